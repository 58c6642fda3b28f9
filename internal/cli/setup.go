// Package cli — setup.go holds the orchestration steps shared by every
// pycheck subcommand: resolve the project root, load the effective
// config, and resolve the toolchain. Each command then adds only its
// own tool invocation on top.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/pycheck/internal/config"
	"github.com/mmr-tortoise/pycheck/internal/model"
	"github.com/mmr-tortoise/pycheck/internal/project"
	"github.com/mmr-tortoise/pycheck/internal/toolchain"
)

// session bundles everything a subcommand needs for one run.
type session struct {
	// Root is the absolute project root directory.
	Root string

	// Config is the effective configuration (defaults + file + env).
	Config *config.Config

	// ConfigSource is the loaded config file path, or empty when
	// defaults are in effect.
	ConfigSource string

	// Toolchain is the resolved virtualenv toolchain.
	Toolchain *toolchain.Toolchain
}

// newSession performs the common setup sequence. Any failure here is a
// CLI-side error with an enumerated exit code: no tool has run yet.
func newSession() (*session, error) {
	// Step 1: Determine the project root. An explicit --root is taken
	// verbatim; otherwise walk upward from the working directory, which
	// makes every command directory-independent.
	var root string
	if rootDir != "" {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to resolve --root %s", rootDir), err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return nil, model.WrapCLIError(model.ExitProjectNotFound,
				fmt.Sprintf("--root %s is not a directory", rootDir), err)
		}
		root = abs
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				"failed to get current directory", err)
		}
		resolved, err := project.ResolveRoot(cwd)
		if err != nil {
			return nil, err
		}
		root = resolved
	}
	VerboseLog("Project root: %s", root)

	// Step 2: Load the effective configuration.
	cfg, source, err := config.Resolve(root, configPath)
	if err != nil {
		return nil, err
	}
	if source != "" {
		VerboseLog("Config: %s", source)
	} else {
		VerboseLog("Config: built-in defaults")
	}

	// Step 3: Resolve the virtualenv toolchain.
	tc, err := toolchain.Resolve(root, cfg)
	if err != nil {
		return nil, err
	}
	if tc.HasVenv() {
		VerboseLog("Virtualenv: %s", tc.VenvDir)
	} else {
		VerboseLog("Virtualenv: none found, using PATH tools")
	}

	return &session{Root: root, Config: cfg, ConfigSource: source, Toolchain: tc}, nil
}

// validateOverrides checks positional target arguments with the same
// rules applied to configured targets.
func validateOverrides(overrides []string) error {
	for _, target := range overrides {
		if err := model.ValidateTarget(target); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid target argument", err)
		}
	}
	return nil
}

// printRunSuccess reports a successful tool run. In text mode the tool's
// own output is the report and pycheck stays quiet apart from verbose
// narration; in JSON mode the run metadata is printed for machine
// consumers.
func printRunSuccess(result *model.RunResult) {
	VerboseLog("%s", result.String())
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	}
}
