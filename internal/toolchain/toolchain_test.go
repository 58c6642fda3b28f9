package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pycheck/internal/config"
	"github.com/mmr-tortoise/pycheck/internal/model"
)

// setupVenv creates a project root containing a virtualenv skeleton
// with the given directory name and a stub executable inside its bin
// directory. Returns the project root.
func setupVenv(t *testing.T, venvName, toolName string) string {
	t.Helper()

	root := t.TempDir()
	binDir := filepath.Join(root, venvName, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))

	stub := filepath.Join(binDir, toolName)
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\necho stub 1.0\n"), 0755))
	return root
}

// envMap converts a KEY=VALUE slice back into a map for assertions.
func envMap(t *testing.T, environ []string) map[string]string {
	t.Helper()

	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		require.True(t, ok, "malformed environment entry %q", kv)
		m[k] = v
	}
	return m
}

// TestResolve_DefaultVenvProbe verifies that .venv is discovered without
// any configuration.
func TestResolve_DefaultVenvProbe(t *testing.T) {
	root := setupVenv(t, ".venv", "black")

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)

	assert.True(t, tc.HasVenv())
	assert.Equal(t, filepath.Join(root, ".venv"), tc.VenvDir)
	assert.Equal(t, filepath.Join(root, ".venv", "bin"), tc.BinDir())
}

// TestResolve_ConfiguredVenvMissing verifies that a configured but
// absent virtualenv aborts with the toolchain exit code instead of
// silently falling back to PATH tools.
func TestResolve_ConfiguredVenvMissing(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Venv = "virtualenv"

	_, err := Resolve(root, cfg)
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitToolchainNotFound, cliErr.Code)
}

// TestResolve_NoVenv verifies that a project without any virtualenv
// still resolves; tools then come from PATH.
func TestResolve_NoVenv(t *testing.T) {
	root := t.TempDir()

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)

	assert.False(t, tc.HasVenv())
	assert.Empty(t, tc.BinDir())
}

// TestLookTool_VenvFirst verifies that a bare tool name resolves to the
// virtualenv binary even when a tool of the same name exists on PATH.
func TestLookTool_VenvFirst(t *testing.T) {
	root := setupVenv(t, ".venv", "sh")

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)

	// "sh" certainly exists on PATH, but the venv copy must win.
	path, err := tc.LookTool("sh")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".venv", "bin", "sh"), path)
}

// TestLookTool_PathFallback verifies that a tool absent from the venv
// falls back to PATH resolution.
func TestLookTool_PathFallback(t *testing.T) {
	root := setupVenv(t, ".venv", "black")

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)

	path, err := tc.LookTool("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.NotContains(t, path, ".venv")
}

// TestLookTool_NotFound verifies the toolchain exit code when a tool
// exists neither in the venv nor on PATH.
func TestLookTool_NotFound(t *testing.T) {
	root := t.TempDir()

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)

	_, err = tc.LookTool("definitely-not-a-real-tool-name")
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitToolchainNotFound, cliErr.Code)
}

// TestEnviron_Activation verifies the core activation keys: PATH gains
// the venv bin prefix, VIRTUAL_ENV is set, and PYTHONHOME is dropped.
func TestEnviron_Activation(t *testing.T) {
	root := setupVenv(t, ".venv", "black")

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)
	tc.baseEnv = []string{
		"PATH=/usr/bin:/bin",
		"PYTHONHOME=/opt/python",
		"HOME=/home/dev",
	}

	vars := envMap(t, tc.Environ(EnvOptions{}))

	binDir := filepath.Join(root, ".venv", "bin")
	assert.Equal(t, binDir+":/usr/bin:/bin", vars["PATH"])
	assert.Equal(t, filepath.Join(root, ".venv"), vars["VIRTUAL_ENV"])
	assert.NotContains(t, vars, "PYTHONHOME")
	assert.Equal(t, "/home/dev", vars["HOME"], "unrelated variables pass through")
}

// TestEnviron_MypyPathPrefix verifies that configured entries are
// absolutized against the root and prepended onto an inherited value.
func TestEnviron_MypyPathPrefix(t *testing.T) {
	root := setupVenv(t, ".venv", "mypy")

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)
	tc.baseEnv = []string{
		"PATH=/usr/bin",
		"MYPYPATH=/existing/stubs",
	}

	vars := envMap(t, tc.Environ(EnvOptions{MypyPathPrefix: []string{"open_rack_vent", "."}}))

	want := filepath.Join(root, "open_rack_vent") + ":" + root + ":/existing/stubs"
	assert.Equal(t, want, vars["MYPYPATH"])
}

// TestEnviron_MypyPathNoInherited verifies that the separator is not
// appended when there is no pre-existing MYPYPATH.
func TestEnviron_MypyPathNoInherited(t *testing.T) {
	root := t.TempDir()

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)
	tc.baseEnv = []string{"PATH=/usr/bin"}

	vars := envMap(t, tc.Environ(EnvOptions{MypyPathPrefix: []string{"src"}}))
	assert.Equal(t, filepath.Join(root, "src"), vars["MYPYPATH"])
}

// TestEnviron_DotenvOverlay verifies that a .env file at the root fills
// variables the process environment does not set, loses to inherited
// values, and never overrides activation keys.
func TestEnviron_DotenvOverlay(t *testing.T) {
	root := setupVenv(t, ".venv", "black")
	dotenv := "FROM_DOTENV=yes\nHOME=/from/dotenv\nVIRTUAL_ENV=/from/dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(dotenv), 0644))

	tc, err := Resolve(root, config.Default())
	require.NoError(t, err)
	tc.baseEnv = []string{"PATH=/usr/bin", "HOME=/home/dev"}

	vars := envMap(t, tc.Environ(EnvOptions{}))

	assert.Equal(t, "yes", vars["FROM_DOTENV"], ".env should fill unset variables")
	assert.Equal(t, "/home/dev", vars["HOME"], "inherited environment wins over .env")
	assert.Equal(t, filepath.Join(root, ".venv"), vars["VIRTUAL_ENV"],
		"activation keys win over .env")
}

// TestProbe_Version verifies that Probe returns the first output line of
// a stub tool's --version invocation.
func TestProbe_Version(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "black")
	script := "#!/bin/sh\necho 'black, 24.1.0 (compiled: yes)'\necho 'extra line'\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0755))

	version, err := Probe(context.Background(), stub, nil)
	require.NoError(t, err)
	assert.Equal(t, "black, 24.1.0 (compiled: yes)", version)
}

// TestProbe_Failure verifies that a tool whose --version exits non-zero
// surfaces an error.
func TestProbe_Failure(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "broken")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nexit 3\n"), 0755))

	_, err := Probe(context.Background(), stub, nil)
	require.Error(t, err)
}
