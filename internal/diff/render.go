package diff

import (
	"fmt"
	"strings"

	"github.com/codalotl/seqdiff/internal/tokenize"
)

// ANSI escapes shared by the renderers.
const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	red       = "\x1b[31m"
	green     = "\x1b[32m"
	magenta   = "\x1b[35m"
	cyanBold  = "\x1b[1;36m"
	pinkLine  = "\x1b[48;5;224m" // light pink for deleted lines
	pinkSpan  = "\x1b[48;5;217m" // slightly darker pink for deleted spans
	greenLine = "\x1b[48;5;194m" // light green for added lines
	greenSpan = "\x1b[48;5;114m" // slightly darker green for added spans
)

// NoNewlineMarker follows, as its own line, any rendered line whose text does not end with "\n" (diff(1) and patch(1) convention).
const NoNewlineMarker = "\\ No newline at end of file"

// missingEOL reports whether line is a real line that lacks a trailing EOL. It is false for the empty side of an insert or delete.
func missingEOL(line string) bool {
	_, hasEOL := trimEOL(line)
	return line != "" && !hasEOL
}

// RenderPretty returns a human-oriented, colorized rendering of d without unified-diff hunk headers. Each line is prefixed like a unified diff: " " for context,
// "-" for deletions, and "+" for insertions; replacements are shown as a "-" line followed by a "+" line. Within changed lines, intra-line additions and deletions
// are highlighted.
//
// If fromFilename and toFilename are both empty, no header is printed. Otherwise a single cyan header line is emitted in one of these forms:
//   - "add <to>:" when only toFilename is set
//   - "delete <from>:" when only fromFilename is set
//   - "<name>:" when both are equal
//   - "<from> -> <to>:" otherwise
//
// contextSize controls how many unchanged lines are shown around each group of changes; see Groups.
//
// Lines are rendered without their trailing newline, and the returned string uses "\n" as the line separator. If there are no changes and no header is requested,
// the result is the empty string.
//
// The output contains ANSI 256-color escape sequences for line and span highlighting and is intended for terminals; it is not a machine-readable or standards-compliant
// diff. For a traditional unified diff, use RenderUnifiedDiff.
func (d Diff) RenderPretty(fromFilename string, toFilename string, contextSize int) string {
	var out []string

	if header := PrettyHeader(fromFilename, toFilename); header != "" {
		out = append(out, cyanBold+header+reset)
	}

	marker := blackFG + NoNewlineMarker + reset
	for _, g := range d.Groups(contextSize) {
		for _, ln := range g.Lines {
			switch ln.Op {
			case OpEqual:
				core, _ := trimEOL(ln.OldText)
				out = append(out, blackFG+" "+core+reset)
				out = appendMarker(out, ln.OldText, marker)
			case OpDelete:
				out = append(out, blackFG+pinkLine+"-"+renderPrettySpans(ln, '-', pinkLine)+reset)
				out = appendMarker(out, ln.OldText, marker)
			case OpInsert:
				out = append(out, blackFG+greenLine+"+"+renderPrettySpans(ln, '+', greenLine)+reset)
				out = appendMarker(out, ln.NewText, marker)
			case OpReplace:
				out = append(out, blackFG+pinkLine+"-"+renderPrettySpans(ln, '-', pinkLine)+reset)
				out = appendMarker(out, ln.OldText, marker)
				out = append(out, blackFG+greenLine+"+"+renderPrettySpans(ln, '+', greenLine)+reset)
				out = appendMarker(out, ln.NewText, marker)
			}
		}
	}

	return strings.Join(out, tokenize.EOL)
}

func appendMarker(out []string, line, marker string) []string {
	if missingEOL(line) {
		return append(out, marker)
	}
	return out
}

// PrettyHeader returns the RenderPretty header text (without color) for a pair of file names, or "" when both are empty.
func PrettyHeader(fromFilename, toFilename string) string {
	switch {
	case fromFilename == "" && toFilename == "":
		return ""
	case fromFilename == "":
		return fmt.Sprintf("add %s:", toFilename)
	case toFilename == "":
		return fmt.Sprintf("delete %s:", fromFilename)
	case fromFilename == toFilename:
		return fmt.Sprintf("%s:", fromFilename)
	default:
		return fmt.Sprintf("%s -> %s:", fromFilename, toFilename)
	}
}

// renderPrettySpans renders one side of a changed line: tag '-' renders the old side and '+' the new side. Changed spans get a darker background, then baseBg
// is reapplied.
func renderPrettySpans(ln DiffLine, tag byte, baseBg string) string {
	spanBg := pinkSpan
	if tag == '+' {
		spanBg = greenSpan
	}
	var b strings.Builder
	for _, sp := range ln.Spans {
		text := sp.OldText
		changed := sp.Op == OpDelete || sp.Op == OpReplace
		if tag == '+' {
			text = sp.NewText
			changed = sp.Op == OpInsert || sp.Op == OpReplace
		}
		if sp.Op == OpEqual {
			b.WriteString(text)
			continue
		}
		if !changed {
			continue
		}
		b.WriteString(reset)
		b.WriteString(blackFG)
		b.WriteString(spanBg)
		b.WriteString(text)
		b.WriteString(reset)
		b.WriteString(blackFG)
		b.WriteString(baseBg)
	}
	return b.String()
}

// RenderUnifiedDiff returns a unified diff. If color, the diff will include ANSI color markers.
//
// Hunk headers follow diff(1): a side with no lines in the hunk reports the line before it (ex: "@@ -0,0 +1,2 @@" for text added to an empty file). Lines are
// rendered without their trailing newline, and a line that had none in its text is followed by NoNewlineMarker. If there are no changes, only the file
// headers are returned.
func (d Diff) RenderUnifiedDiff(color bool, fromFilename string, toFilename string, contextSize int) string {
	colorize := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	out := []string{
		colorize("--- "+fromFilename, cyanBold),
		colorize("+++ "+toFilename, cyanBold),
	}

	for _, g := range d.Groups(contextSize) {
		out = append(out, colorize(g.Header(), magenta))
		for _, ln := range g.Lines {
			oldCore, _ := trimEOL(ln.OldText)
			newCore, _ := trimEOL(ln.NewText)
			switch ln.Op {
			case OpEqual:
				out = append(out, " "+oldCore)
				out = appendMarker(out, ln.OldText, NoNewlineMarker)
			case OpDelete:
				out = append(out, colorize("-"+oldCore, red))
				out = appendMarker(out, ln.OldText, NoNewlineMarker)
			case OpInsert:
				out = append(out, colorize("+"+newCore, green))
				out = appendMarker(out, ln.NewText, NoNewlineMarker)
			case OpReplace:
				out = append(out, colorize("-"+oldCore, red))
				out = appendMarker(out, ln.OldText, NoNewlineMarker)
				out = append(out, colorize("+"+newCore, green))
				out = appendMarker(out, ln.NewText, NoNewlineMarker)
			}
		}
	}

	return strings.Join(out, tokenize.EOL)
}

// Header returns the unified-diff hunk header for g, ex: "@@ -1,3 +1,4 @@".
func (g Group) Header() string {
	oldStart, newStart := g.OldStart, g.NewStart
	if g.OldCount == 0 {
		oldStart--
	}
	if g.NewCount == 0 {
		newStart--
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, g.OldCount, newStart, g.NewCount)
}
