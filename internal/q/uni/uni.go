// Package uni measures and fits text for monospace terminal columns. Widths are computed per grapheme cluster, so combining marks and multi-rune emoji count
// once.
package uni

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// Truncate returns the longest prefix of str that fits in width columns. If str had to be cut, tail is appended and the prefix is shortened so the result still
// fits. Clusters are never split.
func Truncate(str string, width int, tail string, opts *Options) string {
	cond := conditionFromOptions(opts)
	if cond.StringWidth(str) <= width {
		return str
	}
	budget := width - cond.StringWidth(tail)
	if budget < 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	iter := graphemes.FromString(str)
	for iter.Next() {
		w := cond.StringWidth(iter.Value())
		if used+w > budget {
			break
		}
		b.WriteString(iter.Value())
		used += w
	}
	b.WriteString(tail)
	return b.String()
}

// PadRight appends spaces to str until it is width columns wide. Wider strings are returned unchanged.
func PadRight(str string, width int, opts *Options) string {
	w := TextWidth(str, opts)
	if w >= width {
		return str
	}
	return str + strings.Repeat(" ", width-w)
}

// ExpandTabs replaces each tab with spaces up to the next multiple of tabWidth columns. Tabs have no intrinsic width, so text must be expanded before it is
// measured.
func ExpandTabs(str string, tabWidth int, opts *Options) string {
	if !strings.Contains(str, "\t") || tabWidth <= 0 {
		return str
	}
	cond := conditionFromOptions(opts)
	var b strings.Builder
	col := 0
	iter := graphemes.FromString(str)
	for iter.Next() {
		v := iter.Value()
		if v == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(v)
		col += cond.StringWidth(v)
	}
	return b.String()
}

// Clusters calls fn for each grapheme cluster of str with its width, stopping early if fn returns false.
func Clusters(str string, opts *Options, fn func(cluster string, width int) bool) {
	cond := conditionFromOptions(opts)
	iter := graphemes.FromString(str)
	for iter.Next() {
		if !fn(iter.Value(), cond.StringWidth(iter.Value())) {
			return
		}
	}
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
