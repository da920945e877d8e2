package diffview

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/codalotl/seqdiff/internal/diff"
	"github.com/codalotl/seqdiff/internal/q/uni"
)

// SplitOptions control RenderSplit.
type SplitOptions struct {
	// Width is the total width in terminal columns. Values <= 0 use DefaultWidth.
	Width int

	// Color emits ANSI background colors for changed lines and their emphasized segments.
	Color bool

	// TabWidth is the tab stop used to expand tabs. Values <= 0 use 4.
	TabWidth int
}

// DefaultWidth is the split width used when none is given.
const DefaultWidth = 120

const (
	minColumnWidth = 8
	separator      = " │ "
	ellipsis       = "…"
)

const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	magenta   = "\x1b[35m"
	cyanBold  = "\x1b[1;36m"
	pinkLine  = "\x1b[48;5;224m"
	pinkSpan  = "\x1b[48;5;217m"
	greenLine = "\x1b[48;5;194m"
	greenSpan = "\x1b[48;5;114m"
)

// RenderSplit writes v as two side-by-side columns, old on the left, with trailing blanks trimmed. Rows fit in opts.Width columns unless the width is too small
// for the gutters; text that does not fit its column is truncated with "…". The layout of v does not matter: unified rows are shown on their own side.
func RenderSplit(w io.Writer, v View, opts SplitOptions) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	numWidth := len(strconv.Itoa(maxLineNum(v)))
	// Each side is "<num> <marker><text>".
	colWidth := (width-len([]rune(separator)))/2 - numWidth - 2
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}
	sideWidth := numWidth + 2 + colWidth

	r := splitRenderer{color: opts.Color, numWidth: numWidth, colWidth: colWidth, tabWidth: tabWidth}
	bw := bufio.NewWriter(w)

	if v.OldName != "" || v.NewName != "" {
		left := uni.PadRight(uni.Truncate(v.OldName, sideWidth, ellipsis, nil), sideWidth, nil)
		right := uni.Truncate(v.NewName, sideWidth, ellipsis, nil)
		bw.WriteString(r.paint(left+separator+right, cyanBold) + "\n")
	}
	for _, b := range v.Blocks {
		bw.WriteString(r.paint(b.Header, magenta) + "\n")
		for _, row := range b.Rows {
			bw.WriteString(r.row(row) + "\n")
			if row.OldNoEOL || row.NewNoEOL {
				bw.WriteString(r.noEOLRow(row) + "\n")
			}
		}
	}
	return bw.Flush()
}

func maxLineNum(v View) int {
	m := 1
	for _, b := range v.Blocks {
		m = max(m, b.OldStart+b.OldCount, b.NewStart+b.NewCount)
	}
	return m
}

type splitRenderer struct {
	color    bool
	numWidth int
	colWidth int
	tabWidth int
}

func (r splitRenderer) paint(s, code string) string {
	if !r.color {
		return s
	}
	return code + s + reset
}

func (r splitRenderer) row(row Row) string {
	var left, right string
	switch row.Kind {
	case RowContext:
		left = r.side(row.OldNum, ' ', row.Old, "", "")
		right = r.side(row.NewNum, ' ', row.New, "", "")
	case RowDelete:
		left = r.side(row.OldNum, '-', row.Old, pinkLine, pinkSpan)
		right = r.blank()
	case RowInsert:
		left = r.blank()
		right = r.side(row.NewNum, '+', row.New, greenLine, greenSpan)
	case RowChange:
		left = r.side(row.OldNum, '-', row.Old, pinkLine, pinkSpan)
		right = r.side(row.NewNum, '+', row.New, greenLine, greenSpan)
	}
	return strings.TrimRight(left+separator+right, " ")
}

// noEOLRow shows diff.NoNewlineMarker under each side of row whose line has no trailing newline.
func (r splitRenderer) noEOLRow(row Row) string {
	marker := []Segment{{Text: strings.TrimPrefix(diff.NoNewlineMarker, "\\")}}
	left, right := r.blank(), r.blank()
	if row.OldNoEOL {
		left = r.side(0, '\\', marker, "", "")
	}
	if row.NewNoEOL {
		right = r.side(0, '\\', marker, "", "")
	}
	return strings.TrimRight(left+separator+right, " ")
}

func (r splitRenderer) blank() string {
	return strings.Repeat(" ", r.numWidth+2+r.colWidth)
}

// side renders one half of a row: right-aligned line number, marker, then text fitted to colWidth. lineBg and spanBg are only used with color.
func (r splitRenderer) side(num int, marker byte, segs []Segment, lineBg, spanBg string) string {
	var b strings.Builder
	numText := ""
	if num > 0 {
		numText = strconv.Itoa(num)
	}
	b.WriteString(strings.Repeat(" ", r.numWidth-len(numText)))
	b.WriteString(numText)
	b.WriteByte(' ')

	useColor := r.color && lineBg != ""
	if useColor {
		b.WriteString(blackFG + lineBg)
	}
	b.WriteByte(marker)

	used := 0
	budget := r.colWidth
	truncated := uni.TextWidth(uni.ExpandTabs(joinSegments(segs), r.tabWidth, nil), nil) > r.colWidth
	if truncated {
		budget -= uni.TextWidth(ellipsis, nil)
	}

	full := false
	for _, s := range segs {
		if full {
			break
		}
		var seg strings.Builder
		uni.Clusters(s.Text, nil, func(c string, w int) bool {
			if c == "\t" {
				c = strings.Repeat(" ", r.tabWidth-used%r.tabWidth)
				w = len(c)
			}
			if used+w > budget {
				full = true
				return false
			}
			seg.WriteString(c)
			used += w
			return true
		})
		if useColor && s.Emphasis {
			b.WriteString(reset + blackFG + spanBg + seg.String() + reset + blackFG + lineBg)
		} else {
			b.WriteString(seg.String())
		}
	}
	if truncated {
		b.WriteString(ellipsis)
		used += uni.TextWidth(ellipsis, nil)
	}
	if used < r.colWidth {
		b.WriteString(strings.Repeat(" ", r.colWidth-used))
	}
	if useColor {
		b.WriteString(reset)
	}
	return b.String()
}
