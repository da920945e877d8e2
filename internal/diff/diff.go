package diff

import (
	"strings"

	"github.com/codalotl/seqdiff/internal/seqdiff"
	"github.com/codalotl/seqdiff/internal/tokenize"
)

// Op is an operation from old text to new text. It is the engine's Op, so it marshals to JSON as "equal", "insert", "delete", or "replace".
type Op = seqdiff.Op

// Operations from old text to new text.
const (
	OpEqual   = seqdiff.OpEqual
	OpInsert  = seqdiff.OpInsert
	OpDelete  = seqdiff.OpDelete
	OpReplace = seqdiff.OpReplace
)

// Diff is a diff from old text to new text.
//
// As an illustration: imagine a code file is edited: two separate functions are edited in the middle of the file. This will produce:
//   - Hunks[0] will be OpEqual (the prefix of the file).
//   - Hunks[1] will contain the first change: a group of contiguous lines that were changed. OpReplace.
//   - Hunks[2] will be OpEqual (the lines between the edits).
//   - Hunks[3] will contain the second change. Imagine some code was strictly inserted. OpInsert.
//   - Hunks[last] will be OpEqual (the suffix of the file).
//
// Hunks follow the minimal line-level edit script, so an OpEqual hunk is never adjacent to another OpEqual hunk and a change hunk is never adjacent to another
// change hunk.
//
// Invariants:
//   - concat(Hunks.OldText) == OldText
//   - concat(Hunks.NewText) == NewText
type Diff struct {
	OldText string     `json:"oldText"` // Entire original text.
	NewText string     `json:"newText"` // Entire revised text.
	Hunks   []DiffHunk `json:"hunks"`   // Ordered hunks that cover the whole diff and reconstruct OldText/NewText.
}

// DiffHunk represents a contiguous group of lines. The \n character is part of the hunk and line (ex: if a hunk is in the middle of some text is removed, OldText for that hunk would
// be \n terminated).
//
// Operations:
//   - OpEqual: OldText == NewText
//   - OpInsert: OldText=="" && NewText!=""
//   - OpDelete: OldText!="" && NewText==""
//   - OpReplace: OldText != "" and NewText != ""
//
// Invariants:
//   - If OpEqual, Lines is nil. Otherwise,
//   - concat(Lines.OldText) == OldText
//   - concat(Lines.NewText) == NewText
type DiffHunk struct {
	Op      Op         `json:"op"`              // Operation for this hunk (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string     `json:"oldText"`         // Concatenation of old lines in this hunk; empty for inserts.
	NewText string     `json:"newText"`         // Concatenation of new lines in this hunk; empty for deletes.
	Lines   []DiffLine `json:"lines,omitempty"` // Per-line diffs when Op != OpEqual; nil when OpEqual.
}

// DiffLine is a diff on a single line. Each line usually ends with (and includes) \n, unless the input text to DiffText had no \n.
//
// Invariants:
//   - If OpEqual, Spans is nil. Otherwise,
//   - concat(Spans.OldText) + \n? == OldText (\n? is an optional newline, since spans cannot contain \n, but lines usually do)
//   - concat(Spans.NewText) + \n? == NewText
type DiffLine struct {
	Op      Op         `json:"op"`
	OldText string     `json:"oldText"`         // Entire old line (including trailing newline if present); empty for inserts.
	NewText string     `json:"newText"`         // Entire new line (including trailing newline if present); empty for deletes.
	Spans   []DiffSpan `json:"spans,omitempty"` // Intra-line segments when Op != OpEqual; nil when OpEqual. Spans never contain newlines.
}

// DiffSpan is a diff within a line. It MUST NOT contain any \n.
//
// How fine spans are (single characters, words, or the whole line) is chosen by Options.SpanMode.
type DiffSpan struct {
	Op      Op     `json:"op"`
	OldText string `json:"oldText"` // Substring from the old line; empty for inserts.
	NewText string `json:"newText"` // Substring from the new line; empty for deletes.
}

// Stats counts changed lines. A replaced line counts as one deletion and one addition.
type Stats struct {
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

// Stats returns the number of added and deleted lines in d.
func (d Diff) Stats() Stats {
	var s Stats
	for _, h := range d.Hunks {
		if h.Op == OpEqual {
			continue
		}
		s.Deleted += countLines(h.OldText)
		s.Added += countLines(h.NewText)
	}
	return s
}

// Identical reports whether OldText and NewText are the same.
func (d Diff) Identical() bool {
	for _, h := range d.Hunks {
		if h.Op != OpEqual {
			return false
		}
	}
	return true
}

func countLines(text string) int {
	return len(tokenize.LinesKeepEOL(text))
}

// trimEOL removes a trailing EOL from a line if present.
func trimEOL(line string) (string, bool) {
	if strings.HasSuffix(line, tokenize.EOL) {
		return line[:len(line)-len(tokenize.EOL)], true
	}
	return line, false
}
