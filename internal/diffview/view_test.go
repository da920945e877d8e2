package diffview

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/codalotl/seqdiff/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowSummary is a compact form of a Row for table assertions.
type rowSummary struct {
	kind   RowKind
	oldNum int
	newNum int
	old    string
	new    string
}

func summarize(rows []Row) []rowSummary {
	var out []rowSummary
	for _, r := range rows {
		out = append(out, rowSummary{r.Kind, r.OldNum, r.NewNum, r.OldText(), r.NewText()})
	}
	return out
}

func TestBuild_Unified(t *testing.T) {
	d := diff.DiffText("a\nb\nc\nd\n", "a\nB\nX\nc\nd\n")
	v := Build(d, Options{Layout: Unified, Context: 1, OldName: "old.txt", NewName: "new.txt"})

	assert.Equal(t, "old.txt", v.OldName)
	assert.Equal(t, diff.Stats{Added: 2, Deleted: 1}, v.Stats)
	require.Len(t, v.Blocks, 1)

	blk := v.Blocks[0]
	assert.Equal(t, "@@ -1,3 +1,4 @@", blk.Header)
	assert.Equal(t, []rowSummary{
		{RowContext, 1, 1, "a", "a"},
		{RowDelete, 2, 0, "b", ""},
		{RowInsert, 0, 2, "", "B"},
		{RowInsert, 0, 3, "", "X"},
		{RowContext, 3, 4, "c", "c"},
	}, summarize(blk.Rows))
}

func TestBuild_UnifiedDeletesBeforeInserts(t *testing.T) {
	d := diff.DiffText("a\nb\n", "x\ny\n")
	v := Build(d, Options{Layout: Unified, Context: 3})
	require.Len(t, v.Blocks, 1)
	assert.Equal(t, []rowSummary{
		{RowDelete, 1, 0, "a", ""},
		{RowDelete, 2, 0, "b", ""},
		{RowInsert, 0, 1, "", "x"},
		{RowInsert, 0, 2, "", "y"},
	}, summarize(v.Blocks[0].Rows))
}

func TestBuild_Split(t *testing.T) {
	d := diff.DiffText("a\nb\nc\nd\n", "a\nB\nX\nc\nd\n")
	v := Build(d, Options{Layout: Split, Context: 1})

	require.Len(t, v.Blocks, 1)
	assert.Equal(t, []rowSummary{
		{RowContext, 1, 1, "a", "a"},
		{RowChange, 2, 2, "b", "B"},
		{RowInsert, 0, 3, "", "X"},
		{RowContext, 3, 4, "c", "c"},
	}, summarize(v.Blocks[0].Rows))
}

func TestBuild_Emphasis(t *testing.T) {
	d := diff.DiffText("the quick fox\n", "the quiet fox\n")
	v := Build(d, Options{Layout: Split})
	require.Len(t, v.Blocks, 1)
	row := v.Blocks[0].Rows[0]
	require.Equal(t, RowChange, row.Kind)

	for _, segs := range [][]Segment{row.Old, row.New} {
		var emphasized int
		for _, s := range segs {
			if s.Emphasis {
				emphasized++
			}
		}
		assert.Positive(t, emphasized)
		assert.False(t, segs[0].Emphasis, "the shared prefix is not emphasized")
	}
	assert.Equal(t, "the quick fox", row.OldText())
	assert.Equal(t, "the quiet fox", row.NewText())

	// Pure inserts carry no emphasis.
	ins := Build(diff.DiffText("", "new\n"), Options{})
	assert.Equal(t, []Segment{{Text: "new"}}, ins.Blocks[0].Rows[0].New)
}

func TestBuild_FullContext(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\n9\n"
	new := "1\n2\n3\n4\nfive\n6\n7\n8\n9\n"
	d := diff.DiffText(old, new)

	v := Build(d, Options{Context: -1})
	require.Len(t, v.Blocks, 1)
	assert.Len(t, v.Blocks[0].Rows, 10)
	assert.Equal(t, "@@ -1,9 +1,9 @@", v.Blocks[0].Header)

	v = Build(d, Options{Context: 0})
	require.Len(t, v.Blocks, 1)
	assert.Len(t, v.Blocks[0].Rows, 2)
}

func TestBuild_Identical(t *testing.T) {
	v := Build(diff.DiffText("a\n", "a\n"), Options{Context: 3})
	assert.True(t, v.Identical())
	assert.Empty(t, v.Blocks)
}

func TestRenderJSON(t *testing.T) {
	v := Build(diff.DiffText("a\nb\n", "a\nc\n"), Options{Layout: Split, Context: 1, OldName: "x", NewName: "y"})

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, v))
	assert.Contains(t, buf.String(), `"layout": "split"`)
	assert.Contains(t, buf.String(), `"kind": "change"`)
	assert.Contains(t, buf.String(), `"emphasis": true`)

	var back View
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, v, back)
}

func TestLayoutAndRowKindText(t *testing.T) {
	var l Layout
	require.NoError(t, l.UnmarshalText([]byte("split")))
	assert.Equal(t, Split, l)
	assert.Error(t, l.UnmarshalText([]byte("diagonal")))
	assert.Equal(t, "Layout(7)", Layout(7).String())

	var k RowKind
	require.NoError(t, k.UnmarshalText([]byte("insert")))
	assert.Equal(t, RowInsert, k)
	_, err := RowKind(9).MarshalText()
	assert.Error(t, err)
}

func TestBuild_MissingFinalNewline(t *testing.T) {
	d := diff.DiffText("a\nc\n", "a\nc")

	unified := Build(d, Options{Layout: Unified})
	require.Len(t, unified.Blocks, 1)
	rows := unified.Blocks[0].Rows
	require.Len(t, rows, 3)
	assert.False(t, rows[0].OldNoEOL || rows[0].NewNoEOL)
	assert.Equal(t, RowDelete, rows[1].Kind)
	assert.False(t, rows[1].OldNoEOL)
	assert.Equal(t, RowInsert, rows[2].Kind)
	assert.True(t, rows[2].NewNoEOL)

	split := Build(diff.DiffText("a\nb", "x\nb"), Options{Layout: Split})
	rows = split.Blocks[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, RowContext, rows[1].Kind)
	assert.True(t, rows[1].OldNoEOL)
	assert.True(t, rows[1].NewNoEOL)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, split))
	assert.Contains(t, buf.String(), `"oldNoEOL": true`)
}
