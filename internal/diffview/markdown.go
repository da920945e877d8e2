package diffview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/codalotl/seqdiff/internal/diff"
	"github.com/yuin/goldmark"
)

// RenderMarkdown renders v as Markdown: a title line naming the files (when v has names), a stats line, and one fenced ```diff block per Block. Rows are written
// as unified diff lines; a change row becomes a "-" line followed by a "+" line.
func RenderMarkdown(v View) string {
	var b strings.Builder

	if title := markdownTitle(v.OldName, v.NewName); title != "" {
		b.WriteString("**" + title + "**\n\n")
	}
	if v.Identical() {
		b.WriteString("No changes.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s, %s\n", plural(v.Stats.Added, "addition"), plural(v.Stats.Deleted, "deletion"))

	for _, blk := range v.Blocks {
		var body strings.Builder
		body.WriteString(blk.Header + "\n")
		for _, row := range blk.Rows {
			switch row.Kind {
			case RowContext:
				writeDiffLine(&body, " ", row.OldText(), row.OldNoEOL)
			case RowDelete:
				writeDiffLine(&body, "-", row.OldText(), row.OldNoEOL)
			case RowInsert:
				writeDiffLine(&body, "+", row.NewText(), row.NewNoEOL)
			case RowChange:
				writeDiffLine(&body, "-", row.OldText(), row.OldNoEOL)
				writeDiffLine(&body, "+", row.NewText(), row.NewNoEOL)
			}
		}
		fence := codeFence(body.String())
		b.WriteString("\n" + fence + "diff\n")
		b.WriteString(body.String())
		b.WriteString(fence + "\n")
	}
	return b.String()
}

func writeDiffLine(b *strings.Builder, prefix, text string, noEOL bool) {
	b.WriteString(prefix + text + "\n")
	if noEOL {
		b.WriteString(diff.NoNewlineMarker + "\n")
	}
}

// RenderHTML renders v as an HTML fragment by converting RenderMarkdown's output.
func RenderHTML(v View) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(RenderMarkdown(v)), &buf); err != nil {
		return "", fmt.Errorf("diffview: render html: %w", err)
	}
	return buf.String(), nil
}

func markdownTitle(oldName, newName string) string {
	switch {
	case oldName == "" && newName == "":
		return ""
	case oldName == newName || newName == "":
		return codeSpan(oldName)
	case oldName == "":
		return codeSpan(newName)
	default:
		return codeSpan(oldName) + " → " + codeSpan(newName)
	}
}

// codeSpan wraps s in enough backticks that s cannot close the span.
func codeSpan(s string) string {
	ticks := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return ticks + " " + s + " " + ticks
	}
	return ticks + s + ticks
}

// codeFence returns a backtick fence longer than any backtick run in body, and at least three long.
func codeFence(body string) string {
	return strings.Repeat("`", max(3, longestRun(body, '`')+1))
}

func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return longest
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
