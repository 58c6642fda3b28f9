package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mmr-tortoise/pycheck/internal/config"
	"github.com/mmr-tortoise/pycheck/internal/model"
)

// defaultVenvDirs are the virtualenv directory names probed at the
// project root when the config does not name one, in priority order.
var defaultVenvDirs = []string{".venv", "venv"}

// Toolchain describes the resolved Python tooling for one project:
// where the virtualenv lives (if any) and which environment external
// tools should run under.
type Toolchain struct {
	// Root is the absolute project root directory.
	Root string

	// VenvDir is the absolute path of the virtualenv directory, or
	// empty when no virtualenv was found and tools resolve from PATH.
	VenvDir string

	// baseEnv is the environment the toolchain was resolved against.
	// Stored so that Environ is deterministic and testable; defaults
	// to os.Environ() in Resolve.
	baseEnv []string
}

// EnvOptions controls the environment constructed by Environ beyond
// the standard activation keys.
type EnvOptions struct {
	// MypyPathPrefix lists project-relative directories to prepend onto
	// any inherited MYPYPATH value, in order. Empty means MYPYPATH is
	// left untouched.
	MypyPathPrefix []string
}

// Resolve locates the project's virtualenv and returns a Toolchain.
//
// When the config names a venv directory it must exist: running checks
// against whatever Python happens to be on PATH when the user asked for
// an isolated environment would hide real failures. When no venv is configured, the default names
// are probed and a project without any virtualenv is still usable:
// tools then resolve from PATH, which doctor reports.
func Resolve(root string, cfg *config.Config) (*Toolchain, error) {
	tc := &Toolchain{Root: root, baseEnv: os.Environ()}

	if cfg.Venv != "" {
		dir := filepath.Join(root, cfg.Venv)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, model.WrapCLIError(model.ExitToolchainNotFound,
				fmt.Sprintf("configured virtualenv %s not found", dir), err)
		}
		tc.VenvDir = dir
		return tc, nil
	}

	for _, name := range defaultVenvDirs {
		dir := filepath.Join(root, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			tc.VenvDir = dir
			break
		}
	}
	return tc, nil
}

// HasVenv reports whether a virtualenv directory was found.
func (tc *Toolchain) HasVenv() bool {
	return tc.VenvDir != ""
}

// BinDir returns the virtualenv's executable directory, or empty when
// no virtualenv was found. Windows virtualenvs use "Scripts" instead
// of "bin".
func (tc *Toolchain) BinDir() string {
	if tc.VenvDir == "" {
		return ""
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(tc.VenvDir, "Scripts")
	}
	return filepath.Join(tc.VenvDir, "bin")
}

// LookTool resolves a tool name to an executable path.
//
// Names carrying a path separator (or absolute paths) are used as-is
// after an existence check. Bare names resolve against the virtualenv
// bin directory first, then fall back to PATH — the same order a shell
// would use after sourcing the activate file.
//
// Returns a model.CLIError with ExitToolchainNotFound when the tool
// cannot be found anywhere.
func (tc *Toolchain) LookTool(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || filepath.IsAbs(name) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(tc.Root, name)
		}
		if _, err := os.Stat(path); err != nil {
			return "", model.WrapCLIError(model.ExitToolchainNotFound,
				fmt.Sprintf("tool %q not found", name), err)
		}
		return path, nil
	}

	if bin := tc.BinDir(); bin != "" {
		candidate := filepath.Join(bin, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", model.WrapCLIError(model.ExitToolchainNotFound,
			fmt.Sprintf("tool %q not found in virtualenv or PATH", name), err)
	}
	return path, nil
}

// Environ builds the activated environment for tool processes.
//
// Construction order, later layers winning:
//  1. The inherited process environment.
//  2. Values from an optional .env file at the project root, applied
//     only for keys the inherited environment does not set.
//  3. The activation keys: PATH (venv bin prepended), VIRTUAL_ENV,
//     MYPYPATH (configured prefixes prepended onto the inherited
//     value), and PYTHONHOME removed.
//
// The returned slice is a fresh copy; mutating it does not affect the
// current process.
func (tc *Toolchain) Environ(opts EnvOptions) []string {
	vars := make(map[string]string, len(tc.baseEnv))
	for _, kv := range tc.baseEnv {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}

	// Layer 2: .env overlay for unset keys only.
	if dotenv, err := godotenv.Read(filepath.Join(tc.Root, ".env")); err == nil {
		for k, v := range dotenv {
			if _, exists := vars[k]; !exists {
				vars[k] = v
			}
		}
	}

	// Layer 3: activation keys.
	if tc.HasVenv() {
		bin := tc.BinDir()
		if existing, ok := vars["PATH"]; ok && existing != "" {
			vars["PATH"] = bin + string(os.PathListSeparator) + existing
		} else {
			vars["PATH"] = bin
		}
		vars["VIRTUAL_ENV"] = tc.VenvDir
	}

	// A set PYTHONHOME redirects the interpreter's stdlib lookup and
	// breaks virtualenv isolation; activate scripts unset it too.
	delete(vars, "PYTHONHOME")

	if len(opts.MypyPathPrefix) > 0 {
		entries := make([]string, 0, len(opts.MypyPathPrefix)+1)
		for _, rel := range opts.MypyPathPrefix {
			entries = append(entries, filepath.Join(tc.Root, rel))
		}
		if inherited := vars["MYPYPATH"]; inherited != "" {
			entries = append(entries, inherited)
		}
		vars["MYPYPATH"] = strings.Join(entries, string(os.PathListSeparator))
	}

	// Render back to KEY=VALUE form. Sorted for deterministic output,
	// which keeps tests and --verbose dumps stable.
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	environ := make([]string, 0, len(keys))
	for _, k := range keys {
		environ = append(environ, k+"="+vars[k])
	}
	return environ
}
