package diffview

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/codalotl/seqdiff/internal/diff"
	"github.com/codalotl/seqdiff/internal/q/uni"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderSplit(t *testing.T, v View, opts SplitOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderSplit(&buf, v, opts))
	return buf.String()
}

func TestRenderSplit(t *testing.T) {
	v := Build(diff.DiffText("a\nb\nc\n", "a\nX\nc\n"), Options{Layout: Split, Context: 1, OldName: "old.txt", NewName: "new.txt"})

	// Width 40 with one-digit line numbers leaves 15 columns of text per side.
	line := func(l, r string) string {
		return strings.TrimRight(fmt.Sprintf("%-18s │ %s", l, r), " ")
	}
	exp := strings.Join([]string{
		line("old.txt", "new.txt"),
		"@@ -1,3 +1,3 @@",
		line("1  a", "1  a"),
		line("2 -b", "2 +X"),
		line("3  c", "3  c"),
	}, "\n") + "\n"

	assert.Equal(t, exp, renderSplit(t, v, SplitOptions{Width: 40}))
}

func TestRenderSplit_Truncates(t *testing.T) {
	v := Build(diff.DiffText("abcdefghijklmnop\n", ""), Options{Layout: Split})
	out := renderSplit(t, v, SplitOptions{Width: 30})
	assert.Equal(t, "@@ -1,1 +0,0 @@\n1 -abcdefghi… │\n", out)
}

func TestRenderSplit_ExpandsTabs(t *testing.T) {
	v := Build(diff.DiffText("\tx\n", "\ty\n"), Options{Layout: Split})
	out := renderSplit(t, v, SplitOptions{Width: 40})
	assert.Contains(t, out, "1 -    x")
	assert.Contains(t, out, "1 +    y")
	assert.NotContains(t, out, "\t")
}

func TestRenderSplit_UnifiedView(t *testing.T) {
	v := Build(diff.DiffText("a\n", "b\n"), Options{Layout: Unified})
	out := renderSplit(t, v, SplitOptions{Width: 40})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1 -a"))
	assert.True(t, strings.HasSuffix(lines[2], "1 +b"))
}

func TestRenderSplit_Color(t *testing.T) {
	v := Build(diff.DiffText("the quick fox\n", "the quiet fox\n"), Options{Layout: Split})
	out := renderSplit(t, v, SplitOptions{Width: 80, Color: true})
	assert.Contains(t, out, magenta+"@@ -1,1 +1,1 @@"+reset)
	assert.Contains(t, out, pinkSpan+"ck")
	assert.Contains(t, out, greenSpan+"et")

	plain := renderSplit(t, v, SplitOptions{Width: 80})
	assert.NotContains(t, plain, "\x1b[")
}

// assertSeparatorAligned checks that every row with a separator has it in the same display column.
func assertSeparatorAligned(t *testing.T, out string) {
	t.Helper()
	col := -1
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		before, _, ok := strings.Cut(line, "│")
		if !ok {
			continue
		}
		w := uni.TextWidth(before, nil)
		if col < 0 {
			col = w
		}
		assert.Equal(t, col, w, "separator misaligned in %q", line)
	}
	assert.GreaterOrEqual(t, col, 0, "no separator rows")
}

func TestRenderSplit_WideRunes(t *testing.T) {
	v := Build(diff.DiffText("世界世界世界世界\nab\n", ""), Options{Layout: Split})
	out := renderSplit(t, v, SplitOptions{Width: 30})
	// 10 columns of text: four 2-wide clusters and the ellipsis take 9, and a pad space fills the 10th.
	assert.Contains(t, out, "1 -世界世界…  │")
	assert.Contains(t, out, "2 -ab         │")
	assertSeparatorAligned(t, out)
}

func TestRenderSplit_MissingFinalNewline(t *testing.T) {
	v := Build(diff.DiffText("a\nb", "a\nc"), Options{Layout: Split})
	out := renderSplit(t, v, SplitOptions{Width: 80})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, 2, strings.Count(lines[3], diff.NoNewlineMarker))
	assertSeparatorAligned(t, out)

	// Only the side without a newline gets the marker.
	v = Build(diff.DiffText("a\nc\n", "a\nc"), Options{Layout: Split})
	out = renderSplit(t, v, SplitOptions{Width: 80})
	before, after, ok := strings.Cut(strings.Split(strings.TrimRight(out, "\n"), "\n")[3], "│")
	require.True(t, ok)
	assert.NotContains(t, before, diff.NoNewlineMarker)
	assert.Contains(t, after, diff.NoNewlineMarker)
}
