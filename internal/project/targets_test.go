package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile is a test helper that creates a file (and any parent
// directories) with placeholder contents under root.
func writeFile(t *testing.T, root, rel string) {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))
}

// TestDiscoverPythonFiles_Directory verifies that directory targets are
// walked recursively and non-Python files are filtered out.
func TestDiscoverPythonFiles_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/__init__.py")
	writeFile(t, root, "pkg/api/server.py")
	writeFile(t, root, "pkg/api/types.pyi")
	writeFile(t, root, "pkg/data.json")
	writeFile(t, root, "pkg/cache.pyc")

	files, err := DiscoverPythonFiles(root, []string{"pkg"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"pkg/__init__.py",
		"pkg/api/server.py",
		"pkg/api/types.pyi",
	}, files)
}

// TestDiscoverPythonFiles_FileAndDirMix verifies that file targets are
// included directly and that duplicates across overlapping targets are
// collapsed.
func TestDiscoverPythonFiles_FileAndDirMix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "cli.py")
	writeFile(t, root, "pkg/mod.py")

	files, err := DiscoverPythonFiles(root, []string{"cli.py", "pkg", "pkg/mod.py"})
	require.NoError(t, err)

	assert.Equal(t, []string{"cli.py", "pkg/mod.py"}, files)
}

// TestDiscoverPythonFiles_NonPythonFileTarget verifies that a file
// target which is not a Python source is silently skipped rather than
// passed to the tools.
func TestDiscoverPythonFiles_NonPythonFileTarget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md")

	files, err := DiscoverPythonFiles(root, []string{"README.md"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

// TestDiscoverPythonFiles_MissingTarget verifies that a stale target
// fails loudly instead of checking nothing.
func TestDiscoverPythonFiles_MissingTarget(t *testing.T) {
	root := t.TempDir()

	_, err := DiscoverPythonFiles(root, []string{"gone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone")
}
