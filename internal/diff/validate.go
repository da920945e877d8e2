package diff

import (
	"fmt"
	"strings"

	"github.com/codalotl/seqdiff/internal/tokenize"
)

// Validate checks the Diff invariants and returns an error on the first violation. DiffText output always validates; Validate exists for Diffs that were built
// or decoded elsewhere.
func (d Diff) Validate() error {
	var oldConcat, newConcat strings.Builder
	for hi, h := range d.Hunks {
		where := fmt.Sprintf("hunk[%d]", hi)
		if err := checkOp(where, h.Op, h.OldText, h.NewText); err != nil {
			return err
		}
		oldConcat.WriteString(h.OldText)
		newConcat.WriteString(h.NewText)

		if h.Op == OpEqual {
			if h.Lines != nil {
				return fmt.Errorf("%s: OpEqual requires Lines==nil", where)
			}
			continue
		}

		var oldLines, newLines strings.Builder
		for li, ln := range h.Lines {
			if err := validateLine(fmt.Sprintf("%s.line[%d]", where, li), ln); err != nil {
				return err
			}
			oldLines.WriteString(ln.OldText)
			newLines.WriteString(ln.NewText)
		}
		if h.OldText != oldLines.String() {
			return fmt.Errorf("%s: lines do not reconstruct OldText", where)
		}
		if h.NewText != newLines.String() {
			return fmt.Errorf("%s: lines do not reconstruct NewText", where)
		}
	}

	if d.OldText != oldConcat.String() {
		return fmt.Errorf("diff: hunks do not reconstruct OldText")
	}
	if d.NewText != newConcat.String() {
		return fmt.Errorf("diff: hunks do not reconstruct NewText")
	}
	return nil
}

func validateLine(where string, ln DiffLine) error {
	if err := checkOp(where, ln.Op, ln.OldText, ln.NewText); err != nil {
		return err
	}
	if ln.Op == OpEqual {
		if ln.Spans != nil {
			return fmt.Errorf("%s: OpEqual requires Spans==nil", where)
		}
		return nil
	}

	var sOld, sNew strings.Builder
	for si, sp := range ln.Spans {
		spWhere := fmt.Sprintf("%s.span[%d]", where, si)
		if strings.Contains(sp.OldText, tokenize.EOL) {
			return fmt.Errorf("%s: OldText contains EOL", spWhere)
		}
		if strings.Contains(sp.NewText, tokenize.EOL) {
			return fmt.Errorf("%s: NewText contains EOL", spWhere)
		}
		if err := checkOp(spWhere, sp.Op, sp.OldText, sp.NewText); err != nil {
			return err
		}
		sOld.WriteString(sp.OldText)
		sNew.WriteString(sp.NewText)
	}

	oldCore, _ := trimEOL(ln.OldText)
	newCore, _ := trimEOL(ln.NewText)
	if oldCore != sOld.String() {
		return fmt.Errorf("%s: spans do not reconstruct OldText", where)
	}
	if newCore != sNew.String() {
		return fmt.Errorf("%s: spans do not reconstruct NewText", where)
	}
	return nil
}

// checkOp checks that oldText and newText are consistent with op.
func checkOp(where string, op Op, oldText, newText string) error {
	switch op {
	case OpEqual:
		if oldText != newText {
			return fmt.Errorf("%s: OpEqual requires OldText==NewText", where)
		}
	case OpInsert:
		if oldText != "" || newText == "" {
			return fmt.Errorf("%s: OpInsert requires OldText==\"\" and NewText!=\"\"", where)
		}
	case OpDelete:
		if oldText == "" || newText != "" {
			return fmt.Errorf("%s: OpDelete requires OldText!=\"\" and NewText==\"\"", where)
		}
	case OpReplace:
		if oldText == "" || newText == "" {
			return fmt.Errorf("%s: OpReplace requires OldText!=\"\" and NewText!=\"\"", where)
		}
	default:
		return fmt.Errorf("%s: unknown op %v", where, op)
	}
	return nil
}
