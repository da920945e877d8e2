package diff

import "github.com/codalotl/seqdiff/internal/tokenize"

// Group is what one unified-diff hunk shows: one or more change hunks plus the unchanged lines around and between them.
//
// Lines holds, in order, context lines (OpEqual, with OldText == NewText) and the Lines of each change hunk. OldStart and NewStart are the 1-based line numbers
// of the first line of the group on each side; when a side contributes no lines, its Start is the number of the line that would follow.
type Group struct {
	OldStart int        `json:"oldStart"`
	OldCount int        `json:"oldCount"`
	NewStart int        `json:"newStart"`
	NewCount int        `json:"newCount"`
	Lines    []DiffLine `json:"lines"`
}

// Groups partitions the changes of d for display. Each group shows up to contextSize unchanged lines before and after its changes. Two changes separated by at
// most 2*contextSize unchanged lines share a group, with all the lines between them shown. A negative contextSize shows the whole text as one group.
//
// Groups returns nil when d has no changes.
func (d Diff) Groups(contextSize int) []Group {
	if contextSize < 0 {
		contextSize = countLines(d.OldText) + countLines(d.NewText)
	}

	var groups []Group
	oldPos, newPos := 1, 1 // line numbers at the start of hunk i

	i := 0
	for i < len(d.Hunks) {
		h := d.Hunks[i]
		if h.Op == OpEqual {
			n := countLines(h.OldText)
			oldPos += n
			newPos += n
			i++
			continue
		}

		var g Group
		appendContext := func(lines []string) {
			for _, ln := range lines {
				g.Lines = append(g.Lines, DiffLine{Op: OpEqual, OldText: ln, NewText: ln})
			}
		}
		appendChange := func(hk DiffHunk) {
			g.Lines = append(g.Lines, hk.Lines...)
			oldPos += countLines(hk.OldText)
			newPos += countLines(hk.NewText)
		}

		// Pre-context from the tail of the previous equal hunk.
		var pre []string
		if i > 0 && d.Hunks[i-1].Op == OpEqual {
			eq := tokenize.LinesKeepEOL(d.Hunks[i-1].OldText)
			pre = eq[len(eq)-min(contextSize, len(eq)):]
		}
		g.OldStart = oldPos - len(pre)
		g.NewStart = newPos - len(pre)
		appendContext(pre)
		appendChange(h)

		// Absorb following changes while the equal gap before them is small enough.
		j := i + 1
		for j < len(d.Hunks) {
			if d.Hunks[j].Op != OpEqual {
				appendChange(d.Hunks[j])
				j++
				continue
			}
			eq := tokenize.LinesKeepEOL(d.Hunks[j].OldText)
			if j+1 < len(d.Hunks) && len(eq) <= 2*contextSize {
				appendContext(eq)
				oldPos += len(eq)
				newPos += len(eq)
				j++
				continue
			}
			// Post-context from the head of this equal hunk. The main loop advances over the whole hunk.
			appendContext(eq[:min(contextSize, len(eq))])
			break
		}
		i = j

		for _, ln := range g.Lines {
			if ln.Op != OpInsert {
				g.OldCount++
			}
			if ln.Op != OpDelete {
				g.NewCount++
			}
		}
		groups = append(groups, g)
	}
	return groups
}
