package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalyx/turbo/internal/setup/telemetry/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestFileWriterKeepsLatestLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")

	w, err := logger.OpenFile(path, 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for i := 1; i <= 6; i++ {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"line 4", "line 5", "line 6"}, readLines(t, path))

	_, err = fmt.Fprintln(w, "line 7")
	require.NoError(t, err)

	assert.Equal(t, []string{"line 4", "line 5", "line 6", "line 7"}, readLines(t, path))
}

func TestFileWriterUnbounded(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")

	w, err := logger.OpenFile(path, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for i := range 10 {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	assert.Len(t, readLines(t, path), 10)
}
