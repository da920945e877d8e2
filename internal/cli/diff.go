package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/codalotl/seqdiff/internal/diff"
	"github.com/codalotl/seqdiff/internal/diffview"
	qcli "github.com/codalotl/seqdiff/internal/q/cli"
	"github.com/codalotl/seqdiff/internal/q/health"
	"github.com/codalotl/seqdiff/internal/seqdiff"
	"github.com/codalotl/seqdiff/internal/simplelogger"
	"github.com/codalotl/seqdiff/internal/tokenize"
)

const stdinName = "-"

var terminalFormats = []string{"unified", "pretty", "split"}

// runDiff diffs the files oldName and newName and writes cfg.Format to c.Out. It returns qcli.Exit(1) when the inputs differ.
func runDiff(c *qcli.Context, cfg Config, oldName, newName string) error {
	logger := simplelogger.Logger()
	start := time.Now()

	if oldName == stdinName && newName == stdinName {
		return qcli.UsageError{Message: `only one of OLD and NEW may be "-"`}
	}
	oldText, err := readInput(oldName, c.In)
	if err != nil {
		return qcli.ExitError{Code: 2, Err: health.LogErr(logger, err)}
	}
	newText, err := readInput(newName, c.In)
	if err != nil {
		return qcli.ExitError{Code: 2, Err: health.LogErr(logger, err)}
	}

	identical, err := writeDiff(c.Out, cfg, oldName, oldText, newName, newText)
	if err != nil {
		if errors.Is(err, seqdiff.ErrEffortExceeded) {
			err = health.WrapHuman(
				fmt.Sprintf("seqdiff: %s and %s differ too much to diff within the configured limits; retry with smaller inputs or a larger --max-edits/--max-tokens (0 means unlimited)", oldName, newName),
				"diff effort exceeded", err, "maxedits", cfg.MaxEdits, "maxtokens", cfg.MaxTokens)
		}
		return qcli.ExitError{Code: 2, Err: health.LogErr(logger, err, "old", oldName, "new", newName, "format", cfg.Format)}
	}

	logger.Info("diff",
		"old", oldName, "new", newName,
		"oldBytes", len(oldText), "newBytes", len(newText),
		"format", cfg.Format, "identical", identical,
		"elapsed", time.Since(start))

	if !identical {
		return qcli.Exit(1)
	}
	return nil
}

func readInput(name string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if name == stdinName {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", health.WrapHuman("seqdiff: "+err.Error(), "read input", err, "path", name)
	}
	return string(b), nil
}

// writeDiff renders the diff of oldText to newText in cfg.Format and reports whether the inputs were identical.
func writeDiff(w io.Writer, cfg Config, oldName, oldText, newName, newText string) (bool, error) {
	if cfg.Format == "edits" {
		return writeEdits(w, cfg, oldText, newText)
	}

	spanMode, err := diff.ParseSpanMode(cfg.Spans)
	if err != nil {
		return false, err
	}
	d, err := diff.DiffTextWithOptions(oldText, newText, diff.Options{
		SpanMode:        spanMode,
		MaxEditDistance: cfg.MaxEdits,
		MaxTokens:       cfg.MaxTokens,
	})
	if err != nil {
		return false, err
	}

	color := useColor(cfg.Color, w)
	viewOpts := diffview.Options{Layout: diffview.Unified, Context: cfg.Context, OldName: oldName, NewName: newName}

	// Like diff(1), the terminal formats print nothing for identical inputs.
	if d.Identical() && slices.Contains(terminalFormats, cfg.Format) {
		return true, nil
	}

	switch cfg.Format {
	case "unified":
		err = writeText(w, d.RenderUnifiedDiff(color, oldName, newName, cfg.Context))
	case "pretty":
		err = writeText(w, d.RenderPretty(oldName, newName, cfg.Context))
	case "split":
		viewOpts.Layout = diffview.Split
		err = diffview.RenderSplit(w, diffview.Build(d, viewOpts), diffview.SplitOptions{Width: splitWidth(cfg.Width, w), Color: color})
	case "markdown":
		_, err = io.WriteString(w, diffview.RenderMarkdown(diffview.Build(d, viewOpts)))
	case "html":
		var html string
		html, err = diffview.RenderHTML(diffview.Build(d, viewOpts))
		if err == nil {
			_, err = io.WriteString(w, html)
		}
	case "json":
		err = diffview.RenderJSON(w, diffview.Build(d, viewOpts))
	default:
		err = fmt.Errorf("unknown format %q", cfg.Format)
	}
	return d.Identical(), err
}

// writeText writes s, ending it with a newline if it lacks one.
func writeText(w io.Writer, s string) error {
	if !strings.HasSuffix(s, tokenize.EOL) {
		s += tokenize.EOL
	}
	_, err := io.WriteString(w, s)
	return err
}

// writeEdits writes the raw edit script of oldText to newText at cfg.Granularity, one edit per line, followed by a stats line. Example:
//
//	= L[0:1] R[0:1] "a"
//	- L[1:2] "b"
//	+ R[1:2] "x"
//	# equal=1 inserted=1 deleted=1 distance=2
func writeEdits(w io.Writer, cfg Config, oldText, newText string) (bool, error) {
	g, err := tokenize.ParseGranularity(cfg.Granularity)
	if err != nil {
		return false, err
	}
	left := tokenize.Split(oldText, g)
	right := tokenize.Split(newText, g)

	r, err := seqdiff.ComputeWithOptions(left, right, &seqdiff.Options{MaxTokens: cfg.MaxTokens, MaxEditDistance: cfg.MaxEdits})
	if err != nil {
		return false, err
	}

	var b strings.Builder
	for _, e := range r.Edits {
		switch e.Op {
		case seqdiff.OpEqual:
			fmt.Fprintf(&b, "= L[%d:%d] R[%d:%d] %q\n", e.LeftStart, e.LeftEnd, e.RightStart, e.RightEnd, strings.Join(left[e.LeftStart:e.LeftEnd], ""))
		case seqdiff.OpDelete:
			fmt.Fprintf(&b, "- L[%d:%d] %q\n", e.LeftStart, e.LeftEnd, strings.Join(left[e.LeftStart:e.LeftEnd], ""))
		case seqdiff.OpInsert:
			fmt.Fprintf(&b, "+ R[%d:%d] %q\n", e.RightStart, e.RightEnd, strings.Join(right[e.RightStart:e.RightEnd], ""))
		}
	}
	st := r.Stats()
	fmt.Fprintf(&b, "# equal=%d inserted=%d deleted=%d distance=%d\n", st.Equal, st.Inserted, st.Deleted, st.Distance())

	_, err = io.WriteString(w, b.String())
	return r.Identical(), err
}
