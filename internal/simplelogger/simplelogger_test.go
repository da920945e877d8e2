package simplelogger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_WritesAndAppends(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "seqdiff.log"))

	Log("hello %s", "world")
	Log(" %d", 123)

	b, err := os.ReadFile(os.Getenv(EnvVar))
	require.NoError(t, err)
	require.Equal(t, "hello world\n 123\n", string(b))
}

func TestLog_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvVar, "")
	Log("should not %s", "panic")
}

func TestLog_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, dir)

	Log("ignored %d", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLogger_SharesFile(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "seqdiff.log"))

	Log("plain line")
	Logger().Info("diff done", "format", "unified", "hunks", 2)

	b, err := os.ReadFile(os.Getenv(EnvVar))
	require.NoError(t, err)
	assert.Contains(t, string(b), "plain line\n")
	assert.Contains(t, string(b), `level=INFO msg="diff done" format=unified hunks=2`)
}

func TestLogger_DiscardsWhenUnset(t *testing.T) {
	t.Setenv(EnvVar, "")
	l := Logger()
	require.NotNil(t, l)
	l.Error("dropped")
}
