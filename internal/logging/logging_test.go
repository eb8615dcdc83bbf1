package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("quiet")
	logger.Warn("loud", "trip_id", "t1")
	require.NotContains(t, buf.String(), "quiet")
	require.Contains(t, buf.String(), "trip_id=t1")
}

func TestFileWriter_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wanderlist.log")
	w, err := OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(data))
}

func TestFileWriter_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := openFile(path, 100, 60)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	for i := 0; i < 12; i++ {
		_, err := w.Write([]byte(strings.Repeat(string(rune('a'+i)), 9) + "\n"))
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), 100)
	require.True(t, strings.HasSuffix(string(data), "lllllllll\n"))
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		require.Len(t, line, 9, "kept tail starts on a line boundary")
	}
}

func TestFileWriter_TruncatesOversizedFileOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x\n", 100)), 0o644))

	w, err := openFile(path, 50, 20)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.LessOrEqual(t, info.Size(), int64(20))
}
