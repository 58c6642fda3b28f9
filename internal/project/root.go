package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/pycheck/internal/config"
	"github.com/mmr-tortoise/pycheck/internal/model"
)

// extraMarkers are the project markers probed in addition to the
// pycheck config file names. pyproject.toml and setup.cfg identify a
// Python project even before a pycheck config exists; .git catches
// projects that keep their tool settings elsewhere.
var extraMarkers = []string{"pyproject.toml", "setup.cfg", ".git"}

// markerNames returns all file or directory names whose presence makes
// a directory a project root, in probe order.
func markerNames() []string {
	return append(config.FileNames(), extraMarkers...)
}

// IsProjectRoot reports whether dir contains any project marker.
//
// Markers may be files or directories: .git is a directory in a normal
// checkout but a file in a Git worktree, so only existence is checked.
func IsProjectRoot(dir string) bool {
	for _, name := range markerNames() {
		if _, err := os.Lstat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// ResolveRoot walks upward from startDir and returns the first ancestor
// (including startDir itself) that is a project root.
//
// The walk guarantees directory-independence: every directory inside
// the project resolves to the same root, so the CLI behaves identically
// regardless of where it is invoked. The returned path is absolute.
//
// Returns a model.CLIError with ExitProjectNotFound when the filesystem
// root is reached without finding a marker.
func ResolveRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to resolve directory %s", startDir), err)
	}

	for {
		if IsProjectRoot(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root without finding a marker.
			return "", model.NewCLIError(model.ExitProjectNotFound,
				fmt.Sprintf("no project root found above %s (looked for %v)",
					startDir, markerNames()))
		}
		dir = parent
	}
}
