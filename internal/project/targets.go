package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bitfield/script"
)

// pySourceRegexp matches Python source file paths. Bytecode caches
// (.pyc) and stub archives are deliberately excluded; .pyi stubs are
// included because the type checker consumes them.
var pySourceRegexp = regexp.MustCompile(`\.pyi?$`)

// DiscoverPythonFiles expands the given targets (relative to root) into
// the Python source files they cover. File targets are included as-is
// when they look like Python sources; directory targets are walked
// recursively.
//
// The returned paths are relative to root, deduplicated, and sorted for
// stable output. A target that does not exist is an error — a stale
// configured target should fail loudly rather than silently check
// nothing.
func DiscoverPythonFiles(root string, targets []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, target := range targets {
		abs := filepath.Join(root, target)
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("target %q does not exist under %s: %w", target, root, err)
		}

		if !info.IsDir() {
			if pySourceRegexp.MatchString(abs) {
				seen[filepath.Clean(target)] = struct{}{}
			}
			continue
		}

		// script.FindFiles lists every file beneath the directory, one
		// path per line, which the pipeline then filters down to Python
		// sources.
		files, err := script.FindFiles(abs).MatchRegexp(pySourceRegexp).Slice()
		if err != nil {
			return nil, fmt.Errorf("failed to scan target %q: %w", target, err)
		}
		for _, f := range files {
			rel, err := filepath.Rel(root, f)
			if err != nil {
				return nil, fmt.Errorf("failed to relativize %q: %w", f, err)
			}
			seen[rel] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for f := range seen {
		result = append(result, f)
	}
	sort.Strings(result)
	return result, nil
}
