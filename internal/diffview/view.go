// Package diffview turns a diff.Diff into a presentation tree of blocks and rows, and renders that tree as terminal columns, Markdown, HTML, or JSON.
//
// Build is a pure function of its inputs. A View carries everything a renderer needs (line numbers, row kinds, emphasized segments), so renderers never look
// at the Diff again and a web front end can consume the JSON form directly.
package diffview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/codalotl/seqdiff/internal/diff"
)

// Layout selects how changed lines are arranged.
type Layout int

const (
	Unified Layout = iota // one column; deleted rows precede inserted rows
	Split                 // two columns; a deleted and an inserted line that pair up share a change row
)

var layoutNames = [...]string{Unified: "unified", Split: "split"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

func (l Layout) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(layoutNames) {
		return nil, fmt.Errorf("diffview: unknown layout %d", int(l))
	}
	return []byte(layoutNames[l]), nil
}

func (l *Layout) UnmarshalText(b []byte) error {
	for i, name := range layoutNames {
		if name == string(b) {
			*l = Layout(i)
			return nil
		}
	}
	return fmt.Errorf("diffview: unknown layout %q", string(b))
}

// RowKind says which sides of a row carry text and how to style them.
type RowKind int

const (
	RowContext RowKind = iota // unchanged line, same text on both sides
	RowDelete                 // old side only
	RowInsert                 // new side only
	RowChange                 // split layout only: an old line and the new line it became
)

var rowKindNames = [...]string{RowContext: "context", RowDelete: "delete", RowInsert: "insert", RowChange: "change"}

func (k RowKind) String() string {
	if k < 0 || int(k) >= len(rowKindNames) {
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
	return rowKindNames[k]
}

func (k RowKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(rowKindNames) {
		return nil, fmt.Errorf("diffview: unknown row kind %d", int(k))
	}
	return []byte(rowKindNames[k]), nil
}

func (k *RowKind) UnmarshalText(b []byte) error {
	for i, name := range rowKindNames {
		if name == string(b) {
			*k = RowKind(i)
			return nil
		}
	}
	return fmt.Errorf("diffview: unknown row kind %q", string(b))
}

// Options control Build.
type Options struct {
	Layout Layout

	// Context is the number of unchanged lines shown around each change. -1 shows the whole file as one block.
	Context int

	OldName string
	NewName string
}

// View is the presentation tree for one diff.
type View struct {
	OldName string     `json:"oldName,omitempty"`
	NewName string     `json:"newName,omitempty"`
	Layout  Layout     `json:"layout"`
	Stats   diff.Stats `json:"stats"`
	Blocks  []Block    `json:"blocks"`
}

// Block is one group of changes with its context. Start and count fields follow unified diff hunk headers.
type Block struct {
	Header   string `json:"header"`
	OldStart int    `json:"oldStart"`
	OldCount int    `json:"oldCount"`
	NewStart int    `json:"newStart"`
	NewCount int    `json:"newCount"`
	Rows     []Row  `json:"rows"`
}

// Row is one display line. OldNum and NewNum are 1-based line numbers, or 0 when the side is empty. OldNoEOL and NewNoEOL mark a side whose line is the
// last of its text and has no trailing newline.
type Row struct {
	Kind     RowKind   `json:"kind"`
	OldNum   int       `json:"oldNum,omitempty"`
	NewNum   int       `json:"newNum,omitempty"`
	Old      []Segment `json:"old,omitempty"`
	New      []Segment `json:"new,omitempty"`
	OldNoEOL bool      `json:"oldNoEOL,omitempty"`
	NewNoEOL bool      `json:"newNoEOL,omitempty"`
}

// Segment is a piece of a line's text (without EOL). Emphasis marks the parts that changed within a changed line.
type Segment struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// OldText returns the concatenated old-side text of r.
func (r Row) OldText() string {
	return joinSegments(r.Old)
}

// NewText returns the concatenated new-side text of r.
func (r Row) NewText() string {
	return joinSegments(r.New)
}

func joinSegments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Identical reports whether v has nothing to show.
func (v View) Identical() bool {
	return len(v.Blocks) == 0
}

// Build maps d to a View. Blocks follow d.Groups(opts.Context).
func Build(d diff.Diff, opts Options) View {
	v := View{
		OldName: opts.OldName,
		NewName: opts.NewName,
		Layout:  opts.Layout,
		Stats:   d.Stats(),
	}
	for _, g := range d.Groups(opts.Context) {
		v.Blocks = append(v.Blocks, buildBlock(g, opts.Layout))
	}
	return v
}

func buildBlock(g diff.Group, layout Layout) Block {
	b := Block{
		Header:   g.Header(),
		OldStart: g.OldStart,
		OldCount: g.OldCount,
		NewStart: g.NewStart,
		NewCount: g.NewCount,
	}
	oldNum, newNum := g.OldStart, g.NewStart

	// In the unified layout, deleted rows are held until the change run ends so they all precede its inserted rows.
	var dels, ins []Row
	flush := func() {
		b.Rows = append(b.Rows, dels...)
		b.Rows = append(b.Rows, ins...)
		dels, ins = nil, nil
	}

	for _, ln := range g.Lines {
		switch ln.Op {
		case diff.OpEqual:
			flush()
			text := segments(ln, true)
			noEOL := missingEOL(ln.OldText)
			b.Rows = append(b.Rows, Row{Kind: RowContext, OldNum: oldNum, NewNum: newNum, Old: text, New: text, OldNoEOL: noEOL, NewNoEOL: noEOL})
			oldNum++
			newNum++
		case diff.OpDelete:
			dels = append(dels, Row{Kind: RowDelete, OldNum: oldNum, Old: segments(ln, true), OldNoEOL: missingEOL(ln.OldText)})
			oldNum++
		case diff.OpInsert:
			ins = append(ins, Row{Kind: RowInsert, NewNum: newNum, New: segments(ln, false), NewNoEOL: missingEOL(ln.NewText)})
			newNum++
		case diff.OpReplace:
			oldSegs, newSegs := segments(ln, true), segments(ln, false)
			oldNoEOL, newNoEOL := missingEOL(ln.OldText), missingEOL(ln.NewText)
			if layout == Split {
				flush()
				b.Rows = append(b.Rows, Row{Kind: RowChange, OldNum: oldNum, NewNum: newNum, Old: oldSegs, New: newSegs, OldNoEOL: oldNoEOL, NewNoEOL: newNoEOL})
			} else {
				dels = append(dels, Row{Kind: RowDelete, OldNum: oldNum, Old: oldSegs, OldNoEOL: oldNoEOL})
				ins = append(ins, Row{Kind: RowInsert, NewNum: newNum, New: newSegs, NewNoEOL: newNoEOL})
			}
			oldNum++
			newNum++
		}
		if layout == Split {
			flush()
		}
	}
	flush()
	return b
}

func missingEOL(line string) bool {
	return line != "" && !strings.HasSuffix(line, "\n")
}

// segments returns one side of ln as segments. Only replaced lines carry emphasis; a wholly deleted or inserted line is a single plain segment.
func segments(ln diff.DiffLine, oldSide bool) []Segment {
	text := ln.NewText
	if oldSide {
		text = ln.OldText
	}
	if ln.Op != diff.OpReplace {
		core := strings.TrimSuffix(text, "\n")
		if core == "" {
			return nil
		}
		return []Segment{{Text: core}}
	}

	var segs []Segment
	for _, sp := range ln.Spans {
		t := sp.NewText
		if oldSide {
			t = sp.OldText
		}
		if t == "" {
			continue
		}
		segs = append(segs, Segment{Text: t, Emphasis: sp.Op != diff.OpEqual})
	}
	return segs
}

// RenderJSON writes v to w as indented JSON.
func RenderJSON(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
