package seqdiff_test

import (
	"errors"
	"fmt"

	"github.com/codalotl/seqdiff/internal/seqdiff"
)

func ExampleCompute() {
	left := []string{"a", "b", "c"}
	right := []string{"a", "x", "c"}

	r := seqdiff.Compute(left, right)
	for _, e := range r.Edits {
		switch e.Op {
		case seqdiff.OpInsert:
			fmt.Println(e.Op, right[e.RightStart:e.RightEnd])
		default:
			fmt.Println(e.Op, left[e.LeftStart:e.LeftEnd])
		}
	}
	// Output:
	// equal [a]
	// delete [b]
	// insert [x]
	// equal [c]
}

func ExampleResult_Hunks() {
	r := seqdiff.Compute([]rune("kitten"), []rune("sitting"))
	for _, h := range r.Hunks() {
		fmt.Printf("%s left[%d:%d] right[%d:%d]\n", h.Op, h.LeftStart, h.LeftEnd, h.RightStart, h.RightEnd)
	}
	// Output:
	// replace left[0:1] right[0:1]
	// replace left[4:5] right[4:5]
	// insert left[6:6] right[6:7]
}

func ExampleComputeWithOptions() {
	left := []int{1, 2, 3, 4, 5, 6}
	right := []int{6, 5, 4, 3, 2, 1}

	_, err := seqdiff.ComputeWithOptions(left, right, &seqdiff.Options{MaxEditDistance: 4})
	fmt.Println(errors.Is(err, seqdiff.ErrEffortExceeded))
	// Output:
	// true
}
