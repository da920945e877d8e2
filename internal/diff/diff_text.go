package diff

import (
	"fmt"
	"strings"

	"github.com/codalotl/seqdiff/internal/seqdiff"
	"github.com/codalotl/seqdiff/internal/tokenize"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SpanMode selects how changed lines are broken into intra-line spans.
type SpanMode int

const (
	SpanChars SpanMode = iota // character diff; short unchanged bridges between changes are absorbed
	SpanWords                 // word diff over UAX #29 word segments
	SpanNone                  // one span for the whole line
)

func (m SpanMode) String() string {
	switch m {
	case SpanChars:
		return "chars"
	case SpanWords:
		return "words"
	case SpanNone:
		return "none"
	default:
		return fmt.Sprintf("SpanMode(%d)", int(m))
	}
}

// ParseSpanMode parses "chars", "words", or "none".
func ParseSpanMode(s string) (SpanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chars", "char":
		return SpanChars, nil
	case "words", "word":
		return SpanWords, nil
	case "none":
		return SpanNone, nil
	}
	return 0, fmt.Errorf("diff: unknown span mode %q (want chars, words, or none)", s)
}

// Options control DiffTextWithOptions. The zero value is an unbounded diff with character spans.
type Options struct {
	SpanMode SpanMode

	// MaxEditDistance bounds the number of inserted plus deleted lines. 0 means unbounded.
	MaxEditDistance int

	// MaxTokens bounds the total number of lines in both texts. 0 means unbounded.
	MaxTokens int
}

const (
	// maxSandwichedEqualLen is the longest unchanged run (in bytes) between two character-level changes that is folded into them.
	maxSandwichedEqualLen = 8

	// maxSandwichedWordGap is the same for word-level spans; it joins changed words separated only by a single space or punctuation mark.
	maxSandwichedWordGap = 1
)

// DiffText diffs oldText to newText with character spans and no effort bound, returning a Diff.
func DiffText(oldText, newText string) Diff {
	d, err := DiffTextWithOptions(oldText, newText, Options{})
	if err != nil {
		// Unreachable: an unbounded diff of strings cannot fail.
		panic(err)
	}
	return d
}

// DiffTextWithOptions diffs oldText to newText line by line, then breaks changed lines into spans according to opts.SpanMode.
//
// The returned error wraps seqdiff.ErrEffortExceeded when an opts limit is hit, and seqdiff.ErrInvalidInput when a limit is negative.
func DiffTextWithOptions(oldText, newText string, opts Options) (Diff, error) {
	oldLines := tokenize.LinesKeepEOL(oldText)
	newLines := tokenize.LinesKeepEOL(newText)

	r, err := seqdiff.ComputeWithOptions(oldLines, newLines, &seqdiff.Options{MaxTokens: opts.MaxTokens, MaxEditDistance: opts.MaxEditDistance})
	if err != nil {
		return Diff{}, err
	}

	s := newSpanner(opts.SpanMode)

	var hunks []DiffHunk
	var dels []string
	var ins []string

	flush := func() {
		if len(dels) == 0 && len(ins) == 0 {
			return
		}
		var op Op
		switch {
		case len(dels) > 0 && len(ins) > 0:
			op = OpReplace
		case len(dels) > 0:
			op = OpDelete
		default:
			op = OpInsert
		}
		hunks = append(hunks, DiffHunk{Op: op, OldText: strings.Join(dels, ""), NewText: strings.Join(ins, ""), Lines: s.lines(dels, ins)})
		dels = nil
		ins = nil
	}

	for _, e := range r.Edits {
		switch e.Op {
		case seqdiff.OpEqual:
			flush()
			text := strings.Join(oldLines[e.LeftStart:e.LeftEnd], "")
			hunks = append(hunks, DiffHunk{Op: OpEqual, OldText: text, NewText: text})
		case seqdiff.OpDelete:
			dels = append(dels, oldLines[e.LeftStart:e.LeftEnd]...)
		case seqdiff.OpInsert:
			ins = append(ins, newLines[e.RightStart:e.RightEnd]...)
		}
	}
	flush()

	d := Diff{OldText: oldText, NewText: newText, Hunks: hunks}
	if err := d.Validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}
	return d, nil
}

// spanner builds DiffLines and their spans for one SpanMode.
type spanner struct {
	mode SpanMode
	dmp  *diffmatchpatch.DiffMatchPatch
}

func newSpanner(mode SpanMode) *spanner {
	s := &spanner{mode: mode}
	if mode == SpanChars {
		s.dmp = diffmatchpatch.New()
	}
	return s
}

// lines constructs DiffLine entries for a change hunk. Deleted and inserted lines are paired positionally; leftovers are pure deletes or inserts.
func (s *spanner) lines(deleteLines, insertLines []string) []DiffLine {
	n := min(len(deleteLines), len(insertLines))
	var lines []DiffLine

	for i := 0; i < n; i++ {
		oldLine := deleteLines[i]
		newLine := insertLines[i]
		if oldLine == newLine {
			lines = append(lines, DiffLine{Op: OpEqual, OldText: oldLine, NewText: newLine})
			continue
		}
		oldCore, _ := trimEOL(oldLine)
		newCore, _ := trimEOL(newLine)
		lines = append(lines, DiffLine{Op: OpReplace, OldText: oldLine, NewText: newLine, Spans: s.spans(oldCore, newCore)})
	}
	for _, oldLine := range deleteLines[n:] {
		oldCore, _ := trimEOL(oldLine)
		var spans []DiffSpan
		if oldCore != "" {
			spans = []DiffSpan{{Op: OpDelete, OldText: oldCore}}
		}
		lines = append(lines, DiffLine{Op: OpDelete, OldText: oldLine, Spans: spans})
	}
	for _, newLine := range insertLines[n:] {
		newCore, _ := trimEOL(newLine)
		var spans []DiffSpan
		if newCore != "" {
			spans = []DiffSpan{{Op: OpInsert, NewText: newCore}}
		}
		lines = append(lines, DiffLine{Op: OpInsert, NewText: newLine, Spans: spans})
	}
	return lines
}

// spans diffs two line bodies (without EOL).
func (s *spanner) spans(oldCore, newCore string) []DiffSpan {
	switch s.mode {
	case SpanWords:
		return normalizeSpans(wordSpans(oldCore, newCore), maxSandwichedWordGap)
	case SpanNone:
		if oldCore == newCore {
			if oldCore == "" {
				return nil
			}
			return []DiffSpan{{Op: OpEqual, OldText: oldCore, NewText: newCore}}
		}
		return []DiffSpan{joinSpans(DiffSpan{OldText: oldCore, NewText: newCore})}
	default:
		return normalizeSpans(dmpSpans(s.dmp.DiffMain(oldCore, newCore, false)), maxSandwichedEqualLen)
	}
}

// dmpSpans converts diffmatchpatch diffs to DiffSpan entries.
func dmpSpans(diffs []diffmatchpatch.Diff) []DiffSpan {
	spans := make([]DiffSpan, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = append(spans, DiffSpan{Op: OpEqual, OldText: d.Text, NewText: d.Text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, DiffSpan{Op: OpDelete, OldText: d.Text})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, DiffSpan{Op: OpInsert, NewText: d.Text})
		}
	}
	return spans
}

// wordSpans diffs two line bodies as sequences of words.
func wordSpans(oldCore, newCore string) []DiffSpan {
	oldWords := tokenize.Words(oldCore)
	newWords := tokenize.Words(newCore)
	r := seqdiff.Compute(oldWords, newWords)

	spans := make([]DiffSpan, 0, len(r.Edits))
	for _, e := range r.Edits {
		oldText := strings.Join(oldWords[e.LeftStart:e.LeftEnd], "")
		newText := strings.Join(newWords[e.RightStart:e.RightEnd], "")
		spans = append(spans, DiffSpan{Op: e.Op, OldText: oldText, NewText: newText})
	}
	return spans
}

// normalizeSpans reduces fragmentation: empty spans are dropped, adjacent equal spans are coalesced, every run of non-equal spans becomes a single span, and
// an equal span of at most maxBridge bytes sitting between two changes is folded into them. Leading and trailing equal spans are kept as is.
func normalizeSpans(spans []DiffSpan, maxBridge int) []DiffSpan {
	out := make([]DiffSpan, 0, len(spans))
	for _, sp := range spans {
		if sp.OldText == "" && sp.NewText == "" {
			continue
		}
		n := len(out)
		if sp.Op == OpEqual {
			if n > 0 && out[n-1].Op == OpEqual {
				out[n-1].OldText += sp.OldText
				out[n-1].NewText += sp.NewText
				continue
			}
			out = append(out, sp)
			continue
		}
		switch {
		case n >= 2 && out[n-1].Op == OpEqual && out[n-2].Op != OpEqual && len(out[n-1].OldText) <= maxBridge:
			out = append(out[:n-2], joinSpans(out[n-2], out[n-1], sp))
		case n >= 1 && out[n-1].Op != OpEqual:
			out[n-1] = joinSpans(out[n-1], sp)
		default:
			out = append(out, joinSpans(sp))
		}
	}
	return out
}

// joinSpans concatenates spans into one change span. Equal spans contribute to both sides.
func joinSpans(spans ...DiffSpan) DiffSpan {
	var oldBuf, newBuf strings.Builder
	for _, sp := range spans {
		oldBuf.WriteString(sp.OldText)
		newBuf.WriteString(sp.NewText)
	}
	joined := DiffSpan{OldText: oldBuf.String(), NewText: newBuf.String()}
	switch {
	case joined.OldText != "" && joined.NewText != "":
		joined.Op = OpReplace
	case joined.OldText != "":
		joined.Op = OpDelete
	default:
		joined.Op = OpInsert
	}
	return joined
}
