package storage_test

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/konstantinfoerster/deck-diff-go/internal/storage"
	"github.com/konstantinfoerster/deck-diff-go/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreModeCreate(t *testing.T) {
	cases := []struct {
		name     string
		path     []string
		expected string
	}{
		{
			name:     "file in base dir",
			path:     []string{"test.txt"},
			expected: "test.txt",
		},
		{
			name:     "file in sub dir",
			path:     []string{"downloads", "test.txt"},
			expected: filepath.Join("downloads", "test.txt"),
		},
		{
			name:     "cleaned path",
			path:     []string{"downloads", "..", "test.txt"},
			expected: "test.txt",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			s, err := storage.NewLocalStorage(config.Storage{Location: dir, Mode: config.CREATE})
			require.NoError(t, err)

			stored, err := s.Store(strings.NewReader("content"), tc.path...)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, stored.Path)
			assert.Equal(t, filepath.Join(dir, tc.expected), stored.AbsolutePath)
			assert.Equal(t, "content", readFile(t, stored.AbsolutePath))
		})
	}
}

func TestStoreModeCreateFails(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(config.Storage{Location: dir, Mode: config.CREATE})
	require.NoError(t, err)
	_, err = s.Store(strings.NewReader("first"), "test.txt")
	require.NoError(t, err)

	_, err = s.Store(strings.NewReader("second"), "test.txt")

	require.Error(t, err)
	assert.Equal(t, "first", readFile(t, filepath.Join(dir, "test.txt")))
}

func TestStoreOutsideOfBasePath(t *testing.T) {
	s, err := storage.NewLocalStorage(config.Storage{Location: t.TempDir(), Mode: config.CREATE})
	require.NoError(t, err)

	_, err = s.Store(strings.NewReader("content"), "..", "escape.txt")

	require.ErrorContains(t, err, "not within base path")
}

func TestStoreModeReplace(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(config.Storage{Location: dir, Mode: config.REPLACE})
	require.NoError(t, err)
	_, err = s.Store(strings.NewReader("a longer first content"), "test.txt")
	require.NoError(t, err)

	_, err = s.Store(strings.NewReader("second"), "test.txt")

	require.NoError(t, err)
	assert.Equal(t, "second", readFile(t, filepath.Join(dir, "test.txt")))
}

func TestRelativeLocation(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := storage.NewLocalStorage(config.Storage{Location: "./data/", Mode: config.CREATE})
	require.NoError(t, err)

	stored, err := s.Store(strings.NewReader("content"), "test.txt")

	require.NoError(t, err)
	assert.Equal(t, "test.txt", stored.Path)
	assert.Equal(t, filepath.Join("data", "test.txt"), stored.AbsolutePath)
}

func TestLoadNoneExistingFile(t *testing.T) {
	s, err := storage.NewLocalStorage(config.Storage{Location: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Load("does-not-exist.txt")

	require.Error(t, err)
}

func TestLoadWithoutAnyPath(t *testing.T) {
	s, err := storage.NewLocalStorage(config.Storage{Location: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Load()

	require.ErrorContains(t, err, "directory is not supported")
}

func TestLoadFile(t *testing.T) {
	s, err := storage.NewLocalStorage(config.Storage{Location: t.TempDir(), Mode: config.CREATE})
	require.NoError(t, err)
	_, err = s.Store(strings.NewReader("content"), "sub", "test.txt")
	require.NoError(t, err)

	r, err := s.Load("sub", "test.txt")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestFind(t *testing.T) {
	s, err := storage.NewLocalStorage(config.Storage{Location: t.TempDir(), Mode: config.CREATE})
	require.NoError(t, err)
	_, err = s.Store(strings.NewReader("content"), "downloads", "cards.json")
	require.NoError(t, err)

	stored, found, err := s.Find("downloads", "cards.json")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, filepath.Join("downloads", "cards.json"), stored.Path)

	_, found, err = s.Find("downloads", "missing.json")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = s.Find("downloads")
	require.NoError(t, err)
	assert.False(t, found, "directories are not files")
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	return string(test.FileContent(t, path))
}
