// Package simplelogger is an env-gated debug log. Nothing is written unless SEQDIFF_LOG_FILE names a file.
package simplelogger

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvVar names the log file.
const EnvVar = "SEQDIFF_LOG_FILE"

var mu sync.Mutex

// Log is a minimal printf-style logger. It appends formatted output, newline-terminated, to the file named by SEQDIFF_LOG_FILE.
//
// If SEQDIFF_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = fileWriter{}.Write(b.Bytes())
}

// Logger returns a slog text logger that appends to the same file as Log. When SEQDIFF_LOG_FILE is unset the logger discards everything, so callers never need
// a nil check.
func Logger() *slog.Logger {
	if os.Getenv(EnvVar) == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(fileWriter{}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fileWriter opens, appends to, and closes the log file on every Write. Opening per write keeps the file usable across processes and after rotation.
type fileWriter struct{}

func (fileWriter) Write(p []byte) (int, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return len(p), nil
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}
