package test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// OpenFile opens path for reading, the file is closed when the test finishes.
func OpenFile(t *testing.T, path string) *os.File {
	t.Helper()

	f, err := os.Open(filepath.Clean(path))
	require.NoError(t, err, fmt.Sprintf("failed to open file %s", path))
	t.Cleanup(func() {
		_ = f.Close()
	})

	return f
}

func FileContent(t *testing.T, path string) []byte {
	t.Helper()

	content, err := os.ReadFile(filepath.Clean(path))
	require.NoError(t, err, fmt.Sprintf("failed to read data from %s", path))

	return content
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750), fmt.Sprintf("failed to create dir for %s", path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), fmt.Sprintf("failed to write file %s", path))

	return path
}
