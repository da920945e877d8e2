package seqdiff

// Reconstruct rebuilds both sequences from r: gotLeft concatenates the OpEqual and OpDelete ranges of left, and gotRight concatenates the OpEqual and OpInsert
// ranges of right. For a Result computed from (left, right), gotLeft equals left and gotRight equals right.
//
// Reconstruct panics if an edit range is out of bounds for left or right.
func Reconstruct[T any](r Result, left, right []T) (gotLeft, gotRight []T) {
	gotLeft = make([]T, 0, len(left))
	gotRight = make([]T, 0, len(right))
	for _, e := range r.Edits {
		switch e.Op {
		case OpEqual:
			gotLeft = append(gotLeft, left[e.LeftStart:e.LeftEnd]...)
			gotRight = append(gotRight, right[e.RightStart:e.RightEnd]...)
		case OpDelete:
			gotLeft = append(gotLeft, left[e.LeftStart:e.LeftEnd]...)
		case OpInsert:
			gotRight = append(gotRight, right[e.RightStart:e.RightEnd]...)
		}
	}
	return gotLeft, gotRight
}

// Patch is a self-contained edit script: a Result plus the inserted tokens, so it can turn the left sequence into the right one without access to the right
// sequence.
type Patch[T any] struct {
	Result
	Inserted [][]T // Inserted[i] holds the tokens of the i-th OpInsert edit.
}

// NewPatch captures the inserted tokens of r from right.
func NewPatch[T any](r Result, right []T) Patch[T] {
	p := Patch[T]{Result: r}
	for _, e := range r.Edits {
		if e.Op == OpInsert {
			p.Inserted = append(p.Inserted, append([]T(nil), right[e.RightStart:e.RightEnd]...))
		}
	}
	return p
}

// Apply transforms left into the right sequence the patch was made from. It returns an error wrapping ErrInvalidInput if left does not have the length the patch
// expects or the patch is malformed.
func (p Patch[T]) Apply(left []T) ([]T, error) {
	if len(left) != p.LeftLen {
		return nil, invalidInput("seqdiff: patch does not match input length", "want", p.LeftLen, "got", len(left))
	}
	if err := p.Validate(); err != nil {
		return nil, invalidInput("seqdiff: malformed patch", "reason", err.Error())
	}
	out := make([]T, 0, p.RightLen)
	ins := 0
	for _, e := range p.Edits {
		switch e.Op {
		case OpEqual:
			out = append(out, left[e.LeftStart:e.LeftEnd]...)
		case OpInsert:
			if ins >= len(p.Inserted) || len(p.Inserted[ins]) != e.Len() {
				return nil, invalidInput("seqdiff: malformed patch", "reason", "inserted tokens do not match edits")
			}
			out = append(out, p.Inserted[ins]...)
			ins++
		}
	}
	if ins != len(p.Inserted) {
		return nil, invalidInput("seqdiff: malformed patch", "reason", "more inserted token runs than insert edits", "want", ins, "got", len(p.Inserted))
	}
	return out, nil
}
