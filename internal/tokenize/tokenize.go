// Package tokenize splits text into token sequences for diffing.
//
// Every splitter except Lines is lossless: concatenating the tokens reproduces the input exactly.
package tokenize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/words"
)

// Granularity is the unit a text is split into.
type Granularity int

const (
	Line Granularity = iota // lines, each keeping its trailing "\n"
	Word                    // UAX #29 word boundaries: words, runs of spaces, and punctuation are separate tokens
	Char                    // UAX #29 extended grapheme clusters (what a reader sees as one character)
	Rune                    // Unicode code points
)

func (g Granularity) String() string {
	switch g {
	case Line:
		return "line"
	case Word:
		return "word"
	case Char:
		return "char"
	case Rune:
		return "rune"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// ParseGranularity parses "line", "word", "char", or "rune" (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "lines":
		return Line, nil
	case "word", "words":
		return Word, nil
	case "char", "chars", "grapheme", "graphemes":
		return Char, nil
	case "rune", "runes":
		return Rune, nil
	}
	return 0, fmt.Errorf("tokenize: unknown granularity %q (want line, word, char, or rune)", s)
}

// Split splits s at granularity g.
func Split(s string, g Granularity) []string {
	switch g {
	case Word:
		return Words(s)
	case Char:
		return Graphemes(s)
	case Rune:
		return Runes(s)
	default:
		return LinesKeepEOL(s)
	}
}

// EOL is the line separator.
const EOL = "\n"

// Lines splits s into lines without their "\n". A trailing "\n" does not produce an empty final line, so Lines("a\n") and Lines("a") are both ["a"]. Use LinesKeepEOL
// when that difference matters.
func Lines(s string) []string {
	lines := LinesKeepEOL(s)
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, EOL)
	}
	return lines
}

// LinesKeepEOL splits s into lines, each keeping its trailing "\n". Only the last line may lack one.
func LinesKeepEOL(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for s != "" {
		idx := strings.Index(s, EOL)
		if idx == -1 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:idx+len(EOL)])
		s = s[idx+len(EOL):]
	}
	return lines
}

// Words splits s at UAX #29 word boundaries.
func Words(s string) []string {
	var out []string
	iter := words.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// Graphemes splits s into UAX #29 extended grapheme clusters, so a base letter and its combining marks (or a multi-rune emoji) stay one token.
func Graphemes(s string) []string {
	var out []string
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// Runes splits s into single code points. Invalid UTF-8 bytes become one token each, so concatenation still reproduces s.
func Runes(s string) []string {
	var out []string
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		out = append(out, s[:size])
		s = s[size:]
	}
	return out
}
