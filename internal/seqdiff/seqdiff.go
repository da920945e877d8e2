package seqdiff

import (
	"fmt"
)

// Op is an operation from the left sequence to the right sequence.
type Op int

// Operations from left to right. Edits only use OpEqual, OpInsert, and OpDelete; OpReplace describes a hunk that both deletes and inserts.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

var opNames = [...]string{
	OpEqual:   "equal",
	OpInsert:  "insert",
	OpDelete:  "delete",
	OpReplace: "replace",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// MarshalText encodes op as its lowercase name, so JSON output reads "equal", "insert", "delete", or "replace".
func (op Op) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(opNames) {
		return nil, fmt.Errorf("seqdiff: unknown op %d", int(op))
	}
	return []byte(opNames[op]), nil
}

func (op *Op) UnmarshalText(b []byte) error {
	for i, name := range opNames {
		if name == string(b) {
			*op = Op(i)
			return nil
		}
	}
	return fmt.Errorf("seqdiff: unknown op %q", string(b))
}

// Edit is a run of tokens sharing one Op. Ranges are half-open indexes into the left and right sequences.
type Edit struct {
	Op         Op  `json:"op"`
	LeftStart  int `json:"leftStart"`
	LeftEnd    int `json:"leftEnd"`
	RightStart int `json:"rightStart"`
	RightEnd   int `json:"rightEnd"`
}

// Len returns the number of tokens the edit covers. For OpEqual the left and right lengths are the same.
func (e Edit) Len() int {
	if e.Op == OpInsert {
		return e.RightEnd - e.RightStart
	}
	return e.LeftEnd - e.LeftStart
}

// head returns the first n tokens of an equal edit (fewer if the edit is shorter).
func (e Edit) head(n int) Edit {
	if n < e.Len() {
		e.LeftEnd = e.LeftStart + n
		e.RightEnd = e.RightStart + n
	}
	return e
}

// tail returns the last n tokens of an equal edit (fewer if the edit is shorter).
func (e Edit) tail(n int) Edit {
	if n < e.Len() {
		e.LeftStart = e.LeftEnd - n
		e.RightStart = e.RightEnd - n
	}
	return e
}

// Result is the edit script between two sequences. See the package docs for its invariants.
type Result struct {
	Edits    []Edit `json:"edits"`
	LeftLen  int    `json:"leftLen"`
	RightLen int    `json:"rightLen"`
}

// Identical reports whether the sequences had no differences.
func (r Result) Identical() bool {
	for _, e := range r.Edits {
		if e.Op != OpEqual {
			return false
		}
	}
	return true
}

// Stats summarizes a Result by token counts.
type Stats struct {
	Equal    int `json:"equal"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Distance is the edit distance: the number of inserted plus deleted tokens.
func (s Stats) Distance() int {
	return s.Inserted + s.Deleted
}

func (r Result) Stats() Stats {
	var s Stats
	for _, e := range r.Edits {
		switch e.Op {
		case OpEqual:
			s.Equal += e.Len()
		case OpInsert:
			s.Inserted += e.Len()
		case OpDelete:
			s.Deleted += e.Len()
		}
	}
	return s
}

// Hunk is a maximal run of non-equal edits, bounded by equal edits or the ends of the sequences.
//
// Op is OpDelete when only the left range is non-empty, OpInsert when only the right range is non-empty, and OpReplace otherwise.
type Hunk struct {
	Op         Op     `json:"op"`
	LeftStart  int    `json:"leftStart"`
	LeftEnd    int    `json:"leftEnd"`
	RightStart int    `json:"rightStart"`
	RightEnd   int    `json:"rightEnd"`
	Edits      []Edit `json:"edits"`
}

// Hunks returns the change hunks of r in order. It returns nil when the sequences are identical.
func (r Result) Hunks() []Hunk {
	var hunks []Hunk
	for i := 0; i < len(r.Edits); i++ {
		if r.Edits[i].Op == OpEqual {
			continue
		}
		first := i
		for i+1 < len(r.Edits) && r.Edits[i+1].Op != OpEqual {
			i++
		}
		hunks = append(hunks, newHunk(r.Edits[first:i+1]))
	}
	return hunks
}

func newHunk(edits []Edit) Hunk {
	first, last := edits[0], edits[len(edits)-1]
	h := Hunk{
		LeftStart:  first.LeftStart,
		LeftEnd:    last.LeftEnd,
		RightStart: first.RightStart,
		RightEnd:   last.RightEnd,
		Edits:      edits,
	}
	switch {
	case h.LeftStart == h.LeftEnd:
		h.Op = OpInsert
	case h.RightStart == h.RightEnd:
		h.Op = OpDelete
	default:
		h.Op = OpReplace
	}
	return h
}

// Validate checks that r tiles a left sequence of r.LeftLen tokens and a right sequence of r.RightLen tokens according to the package invariants. It returns
// an error describing the first violation.
func (r Result) Validate() error {
	left, right := 0, 0
	for i, e := range r.Edits {
		if e.LeftStart != left || e.RightStart != right {
			return fmt.Errorf("edit[%d]: starts at (%d,%d), want (%d,%d)", i, e.LeftStart, e.RightStart, left, right)
		}
		if e.LeftEnd < e.LeftStart || e.RightEnd < e.RightStart {
			return fmt.Errorf("edit[%d]: negative range", i)
		}
		lenL, lenR := e.LeftEnd-e.LeftStart, e.RightEnd-e.RightStart
		switch e.Op {
		case OpEqual:
			if lenL == 0 || lenL != lenR {
				return fmt.Errorf("edit[%d]: OpEqual requires equal non-zero lengths, got %d and %d", i, lenL, lenR)
			}
		case OpDelete:
			if lenL == 0 || lenR != 0 {
				return fmt.Errorf("edit[%d]: OpDelete requires a non-empty left range and an empty right range", i)
			}
		case OpInsert:
			if lenL != 0 || lenR == 0 {
				return fmt.Errorf("edit[%d]: OpInsert requires an empty left range and a non-empty right range", i)
			}
		default:
			return fmt.Errorf("edit[%d]: unexpected op %v", i, e.Op)
		}
		if i > 0 {
			prev := r.Edits[i-1].Op
			if prev == e.Op {
				return fmt.Errorf("edit[%d]: adjacent edits share op %v", i, e.Op)
			}
			if prev == OpInsert && e.Op == OpDelete {
				return fmt.Errorf("edit[%d]: OpDelete follows OpInsert", i)
			}
		}
		left, right = e.LeftEnd, e.RightEnd
	}
	if left != r.LeftLen || right != r.RightLen {
		return fmt.Errorf("edits cover (%d,%d) tokens, want (%d,%d)", left, right, r.LeftLen, r.RightLen)
	}
	return nil
}
