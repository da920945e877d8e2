package seqdiff

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toks(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

// lcsLen is a dynamic-programming oracle for the length of a longest common subsequence.
func lcsLen[T comparable](a, b []T) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// requireSound checks every structural property a Result of (left, right) must have.
func requireSound[T comparable](t *testing.T, left, right []T, r Result) {
	t.Helper()
	require.NoError(t, r.Validate())
	require.Equal(t, len(left), r.LeftLen)
	require.Equal(t, len(right), r.RightLen)

	gotLeft, gotRight := Reconstruct(r, left, right)
	require.Equal(t, len(left), len(gotLeft))
	require.Equal(t, len(right), len(gotRight))
	for i := range left {
		require.Equal(t, left[i], gotLeft[i])
	}
	for i := range right {
		require.Equal(t, right[i], gotRight[i])
	}

	for _, e := range r.Edits {
		if e.Op != OpEqual {
			continue
		}
		for k := 0; k < e.Len(); k++ {
			require.Equal(t, left[e.LeftStart+k], right[e.RightStart+k], "equal edit %+v pairs unequal tokens", e)
		}
	}

	require.Equal(t, len(left)+len(right)-2*lcsLen(left, right), r.Stats().Distance(), "edit script is not minimal")
}

func TestCompute_Examples(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  []Edit
	}{
		{
			name: "both empty",
		},
		{
			name:  "left empty",
			right: "a b c",
			want:  []Edit{{Op: OpInsert, LeftStart: 0, LeftEnd: 0, RightStart: 0, RightEnd: 3}},
		},
		{
			name: "right empty",
			left: "a b c",
			want: []Edit{{Op: OpDelete, LeftStart: 0, LeftEnd: 3, RightStart: 0, RightEnd: 0}},
		},
		{
			name:  "identical",
			left:  "a b c",
			right: "a b c",
			want:  []Edit{{Op: OpEqual, LeftStart: 0, LeftEnd: 3, RightStart: 0, RightEnd: 3}},
		},
		{
			name:  "single replacement",
			left:  "a b c",
			right: "a x c",
			want: []Edit{
				{Op: OpEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1},
				{Op: OpDelete, LeftStart: 1, LeftEnd: 2, RightStart: 1, RightEnd: 1},
				{Op: OpInsert, LeftStart: 2, LeftEnd: 2, RightStart: 1, RightEnd: 2},
				{Op: OpEqual, LeftStart: 2, LeftEnd: 3, RightStart: 2, RightEnd: 3},
			},
		},
		{
			name:  "append",
			left:  "a b",
			right: "a b c",
			want: []Edit{
				{Op: OpEqual, LeftStart: 0, LeftEnd: 2, RightStart: 0, RightEnd: 2},
				{Op: OpInsert, LeftStart: 2, LeftEnd: 2, RightStart: 2, RightEnd: 3},
			},
		},
		{
			name:  "nothing in common",
			left:  "a b",
			right: "c d e",
			want: []Edit{
				{Op: OpDelete, LeftStart: 0, LeftEnd: 2, RightStart: 0, RightEnd: 0},
				{Op: OpInsert, LeftStart: 2, LeftEnd: 2, RightStart: 0, RightEnd: 3},
			},
		},
		{
			name:  "delete both ends",
			left:  "x a y",
			right: "a",
			want: []Edit{
				{Op: OpDelete, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 0},
				{Op: OpEqual, LeftStart: 1, LeftEnd: 2, RightStart: 0, RightEnd: 1},
				{Op: OpDelete, LeftStart: 2, LeftEnd: 3, RightStart: 1, RightEnd: 1},
			},
		},
		{
			name:  "insertion extends the equal run",
			left:  "a",
			right: "a b a",
			want: []Edit{
				{Op: OpEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1},
				{Op: OpInsert, LeftStart: 1, LeftEnd: 1, RightStart: 1, RightEnd: 3},
			},
		},
		{
			name:  "repeated deletion settles last",
			left:  "a b a b c",
			right: "a b c",
			want: []Edit{
				{Op: OpEqual, LeftStart: 0, LeftEnd: 2, RightStart: 0, RightEnd: 2},
				{Op: OpDelete, LeftStart: 2, LeftEnd: 4, RightStart: 2, RightEnd: 2},
				{Op: OpEqual, LeftStart: 4, LeftEnd: 5, RightStart: 2, RightEnd: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := toks(tt.left), toks(tt.right)
			r := Compute(left, right)
			assert.Equal(t, tt.want, r.Edits)
			requireSound(t, left, right, r)
		})
	}
}

func TestCompute_IdenticalIsOneEqualRun(t *testing.T) {
	for _, s := range []string{"a", "a a a", "x y z x y z", "1 2 3 4 5 6 7 8 9"} {
		a := toks(s)
		r := Compute(a, a)
		require.Len(t, r.Edits, 1)
		require.Equal(t, Edit{Op: OpEqual, LeftStart: 0, LeftEnd: len(a), RightStart: 0, RightEnd: len(a)}, r.Edits[0])
		require.True(t, r.Identical())
	}
}

func TestCompute_Deterministic(t *testing.T) {
	left := toks("the quick brown fox jumps over the lazy dog")
	right := toks("the quick red fox leaps over the lazy cat and the dog")
	first := Compute(left, right)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Compute(left, right))
	}
}

func TestCompute_RandomAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gen := func() []byte {
		n := rng.Intn(14)
		out := make([]byte, n)
		for i := range out {
			out[i] = "abcd"[rng.Intn(4)]
		}
		return out
	}
	for i := 0; i < 2000; i++ {
		left, right := gen(), gen()
		r := Compute(left, right)
		requireSound(t, left, right, r)
	}
}

func TestCompute_LargerInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := make([]int, 400)
	for i := range base {
		base[i] = rng.Intn(50)
	}
	edited := append([]int(nil), base...)
	for k := 0; k < 40; k++ {
		pos := rng.Intn(len(edited))
		switch rng.Intn(3) {
		case 0:
			edited = append(edited[:pos], edited[pos+1:]...)
		case 1:
			edited = append(edited[:pos], append([]int{rng.Intn(50)}, edited[pos:]...)...)
		default:
			edited[pos] = rng.Intn(50)
		}
	}
	r := Compute(base, edited)
	requireSound(t, base, edited, r)
}

func TestCompute_SelfUnequalTokensNeverMatch(t *testing.T) {
	left := []float64{1, math.NaN(), 3}
	right := []float64{1, math.NaN(), 3}
	r := Compute(left, right)
	require.NoError(t, r.Validate())
	require.Equal(t, Stats{Equal: 2, Inserted: 1, Deleted: 1}, r.Stats())
}

func TestComputeWithOptions_InvalidInput(t *testing.T) {
	_, err := ComputeWithOptions([]float64{1, math.NaN()}, []float64{1}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "index=1")

	_, err = ComputeWithOptions([]int{1}, []int{2}, &Options{MaxTokens: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeWithOptions([]int{1}, []int{2}, &Options{MaxEditDistance: -3})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeFunc([]int{1}, []int{2}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeWithOptions_MaxTokens(t *testing.T) {
	left, right := toks("a b c"), toks("a x c")

	_, err := ComputeWithOptions(left, right, &Options{MaxTokens: 5})
	require.ErrorIs(t, err, ErrEffortExceeded)
	require.False(t, errors.Is(err, ErrInvalidInput))

	r, err := ComputeWithOptions(left, right, &Options{MaxTokens: 6})
	require.NoError(t, err)
	require.Equal(t, Compute(left, right), r)
}

func TestComputeWithOptions_MaxEditDistance(t *testing.T) {
	tests := []struct {
		left, right string
		distance    int
	}{
		{"a b c", "a x c", 2},
		{"a b", "", 2},
		{"", "a b c", 3},
		{"a b c d e", "a x c e f", 4},
		{"a b c a b b a", "c b a b a c", 5},
	}
	for _, tt := range tests {
		left, right := toks(tt.left), toks(tt.right)

		r, err := ComputeWithOptions(left, right, &Options{MaxEditDistance: tt.distance})
		require.NoError(t, err, "%q -> %q", tt.left, tt.right)
		require.Equal(t, tt.distance, r.Stats().Distance())

		_, err = ComputeWithOptions(left, right, &Options{MaxEditDistance: tt.distance - 1})
		require.ErrorIs(t, err, ErrEffortExceeded, "%q -> %q", tt.left, tt.right)
	}
}

func TestComputeWithOptions_MaxEditDistanceRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gen := func() []byte {
		out := make([]byte, rng.Intn(20))
		for i := range out {
			out[i] = "abc"[rng.Intn(3)]
		}
		return out
	}
	for i := 0; i < 500; i++ {
		left, right := gen(), gen()
		d := Compute(left, right).Stats().Distance()
		if d < 2 {
			continue
		}
		_, err := ComputeWithOptions(left, right, &Options{MaxEditDistance: d})
		require.NoError(t, err)
		_, err = ComputeWithOptions(left, right, &Options{MaxEditDistance: d - 1})
		require.ErrorIs(t, err, ErrEffortExceeded, "%q -> %q (distance %d)", left, right, d)
	}
}

func TestComputeFunc_CustomEquality(t *testing.T) {
	left := toks("Alpha beta GAMMA")
	right := toks("alpha BETA delta gamma")
	r, err := ComputeFunc(left, right, strings.EqualFold, nil)
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	require.Equal(t, Stats{Equal: 3, Inserted: 1, Deleted: 0}, r.Stats())
	require.Equal(t, []Edit{
		{Op: OpEqual, LeftStart: 0, LeftEnd: 2, RightStart: 0, RightEnd: 2},
		{Op: OpInsert, LeftStart: 2, LeftEnd: 2, RightStart: 2, RightEnd: 3},
		{Op: OpEqual, LeftStart: 2, LeftEnd: 3, RightStart: 3, RightEnd: 4},
	}, r.Edits)
}

func TestCompute_ConcurrentUse(t *testing.T) {
	left := toks("a b c d e f g")
	right := toks("a c d x f g h")
	want := Compute(left, right)

	done := make(chan Result)
	for i := 0; i < 8; i++ {
		go func() { done <- Compute(left, right) }()
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, want, <-done)
	}
}

func TestOp_Text(t *testing.T) {
	for _, op := range []Op{OpEqual, OpInsert, OpDelete, OpReplace} {
		b, err := op.MarshalText()
		require.NoError(t, err)
		var got Op
		require.NoError(t, got.UnmarshalText(b))
		require.Equal(t, op, got)
	}
	var op Op
	require.Error(t, op.UnmarshalText([]byte("swap")))
	require.Equal(t, "Op(9)", Op(9).String())
}

func TestResult_ValidateRejectsBrokenScripts(t *testing.T) {
	tests := map[string]Result{
		"gap": {
			LeftLen: 2, RightLen: 2,
			Edits: []Edit{{Op: OpEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1}, {Op: OpEqual, LeftStart: 2, LeftEnd: 2, RightStart: 2, RightEnd: 2}},
		},
		"insert before delete": {
			LeftLen: 1, RightLen: 1,
			Edits: []Edit{{Op: OpInsert, LeftStart: 0, LeftEnd: 0, RightStart: 0, RightEnd: 1}, {Op: OpDelete, LeftStart: 0, LeftEnd: 1, RightStart: 1, RightEnd: 1}},
		},
		"adjacent equal": {
			LeftLen: 2, RightLen: 2,
			Edits: []Edit{{Op: OpEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1}, {Op: OpEqual, LeftStart: 1, LeftEnd: 2, RightStart: 1, RightEnd: 2}},
		},
		"short": {
			LeftLen: 3, RightLen: 1,
			Edits: []Edit{{Op: OpEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1}},
		},
		"replace edit": {
			LeftLen: 1, RightLen: 1,
			Edits: []Edit{{Op: OpReplace, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1}},
		},
	}
	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			require.Error(t, r.Validate())
		})
	}
}
