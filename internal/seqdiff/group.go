package seqdiff

// Group is a window of a Result for display: one or more hunks plus up to context equal tokens before and after them. Edits holds the edits in the window,
// with the leading and trailing equal edits clipped to the context.
type Group struct {
	LeftStart  int    `json:"leftStart"`
	LeftEnd    int    `json:"leftEnd"`
	RightStart int    `json:"rightStart"`
	RightEnd   int    `json:"rightEnd"`
	Edits      []Edit `json:"edits"`
}

// Hunks returns the change hunks inside g.
func (g Group) Hunks() []Hunk {
	return Result{Edits: g.Edits}.Hunks()
}

// Groups returns the hunks of r padded with up to context equal tokens on each side. Two hunks separated by at most 2*context equal tokens share a group, with
// the separating tokens included whole. A negative context is treated as 0. It returns nil when the sequences are identical.
func (r Result) Groups(context int) []Group {
	if context < 0 {
		context = 0
	}
	edits := r.Edits

	var groups []Group
	i := 0
	for i < len(edits) {
		if edits[i].Op == OpEqual {
			i++
			continue
		}

		var g []Edit
		if i > 0 && context > 0 {
			g = append(g, edits[i-1].tail(context))
		}

		j := i
		for j < len(edits) {
			if edits[j].Op != OpEqual {
				g = append(g, edits[j])
				j++
				continue
			}
			// An equal edit is never followed by another equal edit, so j+1 is a change.
			if j+1 < len(edits) && edits[j].Len() <= 2*context {
				g = append(g, edits[j])
				j++
				continue
			}
			if context > 0 {
				g = append(g, edits[j].head(context))
			}
			j++
			break
		}
		i = j

		first, last := g[0], g[len(g)-1]
		groups = append(groups, Group{
			LeftStart:  first.LeftStart,
			LeftEnd:    last.LeftEnd,
			RightStart: first.RightStart,
			RightEnd:   last.RightEnd,
			Edits:      g,
		})
	}
	return groups
}
