// Package config handles loading and validation of the pycheck
// configuration file.
//
// The config file lives at the project root under one of the names
// returned by FileNames (first match wins). Two formats are supported:
//   - JSONC (pycheck.jsonc / pycheck.json): comments and trailing commas
//     are stripped with github.com/tidwall/jsonc before parsing with the
//     standard encoding/json library.
//   - YAML (pycheck.yaml / pycheck.yml): parsed with gopkg.in/yaml.v3.
//
// Every field is optional. With no config file at all, the defaults
// format, check, and typecheck the whole tree. After the file (if any)
// is loaded, a
// small set of PYCHECK_* environment variables can override individual
// fields, which is useful in CI where editing the checked-in config is
// not an option.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/pycheck/internal/model"
)

// Config holds all tunable settings for a pycheck run.
//
// JSON tags serve the JSONC format, YAML tags the YAML format, and env
// tags the PYCHECK_* environment overrides. Slice fields deliberately
// have no env tags: target lists belong in the checked-in config.
type Config struct {
	// Venv is the virtualenv directory, relative to the project root.
	// When empty, the toolchain probes ".venv" and then "venv".
	Venv string `json:"venv,omitempty" yaml:"venv,omitempty" env:"PYCHECK_VENV"`

	// BlackBin is the formatter executable name or path.
	// Resolved against the virtualenv bin directory first, then PATH.
	BlackBin string `json:"blackBin,omitempty" yaml:"blackBin,omitempty" env:"PYCHECK_BLACK_BIN"`

	// MypyBin is the type checker executable name or path.
	MypyBin string `json:"mypyBin,omitempty" yaml:"mypyBin,omitempty" env:"PYCHECK_MYPY_BIN"`

	// FormatTargets are the paths (relative to the project root) that
	// "pycheck fmt" rewrites. Defaults to the whole project.
	FormatTargets []string `json:"formatTargets,omitempty" yaml:"formatTargets,omitempty"`

	// CheckTargets are the paths that "pycheck check" verifies in
	// check/diff mode. Defaults to FormatTargets.
	CheckTargets []string `json:"checkTargets,omitempty" yaml:"checkTargets,omitempty"`

	// TypeCheckTargets are the files and packages that "pycheck typecheck"
	// passes to the type checker. Defaults to the whole project.
	TypeCheckTargets []string `json:"typecheckTargets,omitempty" yaml:"typecheckTargets,omitempty"`

	// MypyPath lists directories (relative to the project root) that are
	// prepended to any inherited MYPYPATH for the duration of the
	// typecheck run.
	MypyPath []string `json:"mypyPath,omitempty" yaml:"mypyPath,omitempty"`

	// BlackArgs are extra arguments inserted before the targets on every
	// formatter invocation (e.g. "--line-length", "100").
	BlackArgs []string `json:"blackArgs,omitempty" yaml:"blackArgs,omitempty"`

	// MypyArgs are extra arguments inserted before the targets on every
	// type checker invocation (e.g. "--strict").
	MypyArgs []string `json:"mypyArgs,omitempty" yaml:"mypyArgs,omitempty"`
}

// FileNames returns the config file names probed at the project root,
// in priority order. The JSONC spellings come first because they are
// the documented default.
func FileNames() []string {
	return []string{"pycheck.jsonc", "pycheck.json", "pycheck.yaml", "pycheck.yml"}
}

// Default returns the configuration used when no config file exists.
// The tool names match the upstream distributions; target defaults run
// the tools over the whole project, which is always safe because both
// tools skip non-Python files on their own.
func Default() *Config {
	return &Config{
		BlackBin:         "black",
		MypyBin:          "mypy",
		FormatTargets:    []string{"."},
		TypeCheckTargets: []string{"."},
	}
}

// Find probes the project root for a config file and returns the path
// of the first one that exists. The boolean is false when none exists,
// which is not an error: defaults apply.
func Find(root string) (string, bool) {
	for _, name := range FileNames() {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads and parses the config file at the given path. The format
// is chosen by file extension. Unknown fields are ignored in both
// formats so that the file can carry editor- or human-oriented extras.
//
// Returns a model.CLIError with ExitConfigInvalid on read or parse
// failures.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".json":
		// Strip comments and trailing commas first; the remainder is
		// plain JSON for the standard library.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("unsupported config file extension: %s", path))
	}

	return cfg, nil
}

// Resolve produces the effective configuration for a project root.
//
// Resolution order, later steps overriding earlier ones:
//  1. Built-in defaults
//  2. The config file (explicitPath if given, otherwise the first
//     discovered file at the root, otherwise nothing)
//  3. PYCHECK_* environment variables
//
// The returned source is the path of the loaded file, or empty when
// defaults are in effect. The configuration is validated before it is
// returned.
func Resolve(root, explicitPath string) (*Config, string, error) {
	cfg := Default()
	source := ""

	path := explicitPath
	if path == "" {
		if found, ok := Find(root); ok {
			path = found
		}
	}

	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		cfg.merge(loaded)
		source = path
	}

	// Environment overrides win over the file. env.Parse only touches
	// fields whose variables are actually set.
	if err := env.Parse(cfg); err != nil {
		return nil, "", model.WrapCLIError(model.ExitConfigInvalid,
			"failed to apply environment overrides", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, source, nil
}

// merge overlays the non-zero fields of other onto c. Slice fields
// replace rather than append: a configured target list is authoritative.
func (c *Config) merge(other *Config) {
	if other.Venv != "" {
		c.Venv = other.Venv
	}
	if other.BlackBin != "" {
		c.BlackBin = other.BlackBin
	}
	if other.MypyBin != "" {
		c.MypyBin = other.MypyBin
	}
	if len(other.FormatTargets) > 0 {
		c.FormatTargets = other.FormatTargets
	}
	if len(other.CheckTargets) > 0 {
		c.CheckTargets = other.CheckTargets
	}
	if len(other.TypeCheckTargets) > 0 {
		c.TypeCheckTargets = other.TypeCheckTargets
	}
	if len(other.MypyPath) > 0 {
		c.MypyPath = other.MypyPath
	}
	if len(other.BlackArgs) > 0 {
		c.BlackArgs = other.BlackArgs
	}
	if len(other.MypyArgs) > 0 {
		c.MypyArgs = other.MypyArgs
	}
}

// applyDefaults fills derived defaults that depend on other fields.
// CheckTargets falls back to FormatTargets so that "check" verifies
// exactly what "fmt" would rewrite.
func (c *Config) applyDefaults() {
	if len(c.CheckTargets) == 0 {
		c.CheckTargets = c.FormatTargets
	}
}

// Validate checks the configuration for values that would make a run
// nonsensical or unsafe. All target and path entries must be relative
// paths that stay inside the project root.
func (c *Config) Validate() error {
	if c.BlackBin == "" {
		return model.NewCLIError(model.ExitConfigInvalid, "blackBin must not be empty")
	}
	if c.MypyBin == "" {
		return model.NewCLIError(model.ExitConfigInvalid, "mypyBin must not be empty")
	}
	if c.Venv != "" {
		if err := model.ValidateTarget(c.Venv); err != nil {
			return model.WrapCLIError(model.ExitConfigInvalid, "invalid venv directory", err)
		}
	}

	lists := map[string][]string{
		"formatTargets":    c.FormatTargets,
		"checkTargets":     c.CheckTargets,
		"typecheckTargets": c.TypeCheckTargets,
		"mypyPath":         c.MypyPath,
	}
	for field, targets := range lists {
		for _, target := range targets {
			if err := model.ValidateTarget(target); err != nil {
				return model.WrapCLIError(model.ExitConfigInvalid,
					fmt.Sprintf("invalid %s entry", field), err)
			}
		}
	}

	return nil
}
