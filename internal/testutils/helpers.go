package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteStoryDir creates a temporary directory holding files (relative name -> content).
// It returns the absolute path to the directory.
// It fails the test immediately on error.
func WriteStoryDir(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	}

	return absPath
}

// WriteFile writes a single file into a temporary directory and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := WriteStoryDir(t, map[string]string{name: content})
	return filepath.Join(dir, filepath.FromSlash(name))
}
