// Package health builds errors that carry slog-style attributes, and logs them without losing those attributes.
//
// An error's string form is "msg[k=v ...] via <wrapped>", so attrs survive even when the error is only printed.
package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// HealthErr is an error with a message, optional slog attrs, and an optional wrapped error.
type HealthErr struct {
	Message string
	wrapped error
	attrs   []any
}

// Error serializes the message, attrs, and the wrapped error's string.
func (e *HealthErr) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.attrs) > 0 {
		b.WriteString("[")
		writeAttrs(&b, e.attrs)
		b.WriteString("]")
	}

	if e.wrapped != nil {
		b.WriteString(" via ")
		b.WriteString(e.wrapped.Error())
	}

	return b.String()
}

func (e *HealthErr) Unwrap() error {
	return e.wrapped
}

// Attrs returns the attrs given when e was created, in slog's key/value-or-Attr form.
func (e *HealthErr) Attrs() []any {
	return e.attrs
}

// NewErr returns a new error (unlogged). args are in the same format as slog's args to Info: key/values or slog.Attrs. To wrap an error, use Wrap.
func NewErr(msg string, args ...any) error {
	return &HealthErr{Message: msg, attrs: args}
}

// Wrap returns a new error that wraps `wrapped`, so errors.Is and errors.As see through it.
func Wrap(msg string, wrapped error, args ...any) error {
	if wrapped == nil {
		// Don't panic over a caller bug, but make it visible.
		wrapped = errors.New("nil wrapped error. WARNING: you should not call Wrap with a nil error")
	}
	return &HealthErr{Message: msg, wrapped: wrapped, attrs: args}
}

// LogErr logs err to logger (if both are non-nil) and returns err. It enables the pattern of logging and returning an error in one line:
//
//	return health.LogErr(logger, health.Wrap("read input", err, "path", path))
//
// A HealthErr (or HumanErr) is logged with its own message, then its attrs, then a "via" attr holding the wrapped error, then args. Other errors are logged
// as err.Error() with args.
func LogErr(logger *slog.Logger, err error, args ...any) error {
	if logger == nil || err == nil {
		return err
	}

	var h *HealthErr
	switch e := err.(type) {
	case *HumanErr:
		h = &e.HealthErr
	case *HealthErr:
		h = e
	default:
		logger.Error(err.Error(), args...)
		return err
	}

	allArgs := make([]any, 0, len(h.attrs)+len(args)+1)
	allArgs = append(allArgs, h.attrs...)
	if h.wrapped != nil {
		allArgs = append(allArgs, slog.String("via", h.wrapped.Error()))
	}
	allArgs = append(allArgs, args...)

	logger.Error(h.Message, allArgs...)
	return err
}

// writeAttrs writes attrs (in the protocol of slog attrs to .Log) to b in the Text handler's key=value format. Ex: `num=3 str="hi"`.
func writeAttrs(b *strings.Builder, attrs []any) {
	if len(attrs) == 0 {
		return
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey {
				return slog.Attr{}
			}
			return a
		},
	}

	logger := slog.New(slog.NewTextHandler(&noNewlineWriter{w: b}, opts))
	logger.Log(context.Background(), slog.LevelDebug, "", attrs...)
}

// noNewlineWriter drops the single trailing newline slog.TextHandler appends to each record.
type noNewlineWriter struct {
	w io.Writer
}

func (n *noNewlineWriter) Write(p []byte) (int, error) {
	if len(p) > 0 && p[len(p)-1] == '\n' {
		written, err := n.w.Write(p[:len(p)-1])
		if err == nil {
			return len(p), nil
		}
		return written, err
	}
	return n.w.Write(p)
}
