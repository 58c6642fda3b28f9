// Package model defines the domain types for the pycheck CLI.
//
// All entities in this package are transient, in-memory representations.
// pycheck persists no state of its own (the virtualenv and the Python
// project it checks are external artifacts); these types only describe
// a single invocation.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ToolKind identifies which class of external tool a run belongs to.
// The CLI currently drives exactly two tools: the formatter (black)
// and the type checker (mypy).
type ToolKind string

const (
	// ToolFormatter is the code formatter. It runs either in write mode
	// (rewriting files in place) or in check/diff mode (read-only,
	// non-zero exit when any file would change).
	ToolFormatter ToolKind = "formatter"

	// ToolTypeChecker is the static type checker. It never modifies
	// files and exits non-zero when any type error is found.
	ToolTypeChecker ToolKind = "typechecker"
)

// String returns the string representation of ToolKind.
// This method satisfies the fmt.Stringer interface for CLI output.
func (k ToolKind) String() string {
	return string(k)
}

// IsValid checks whether the ToolKind value is one of the
// predefined valid kinds.
func (k ToolKind) IsValid() bool {
	switch k {
	case ToolFormatter, ToolTypeChecker:
		return true
	default:
		return false
	}
}

// ParseToolKind converts a string to a ToolKind.
// Returns an error if the string does not match any valid kind.
func ParseToolKind(s string) (ToolKind, error) {
	kind := ToolKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid tool kind: %q (valid: formatter, typechecker)", s)
	}
	return kind, nil
}

// RunResult describes the outcome of one external tool invocation.
//
// The tool's stdout/stderr are streamed directly to the user and are
// not captured here; the result only carries the metadata the CLI
// needs to report and to compute its own exit status.
type RunResult struct {
	// Tool is the kind of tool that ran.
	Tool ToolKind `json:"tool"`

	// Binary is the resolved path of the executable that ran.
	Binary string `json:"binary"`

	// Args is the full argument list passed to the binary,
	// excluding the binary name itself.
	Args []string `json:"args"`

	// ExitCode is the tool process's exit code. Zero means success.
	// This value is propagated verbatim as the CLI's own exit code.
	ExitCode int `json:"exitCode"`

	// Duration is the wall-clock time the tool process took.
	Duration time.Duration `json:"durationNs"`
}

// Succeeded reports whether the tool exited zero.
func (r *RunResult) Succeeded() bool {
	return r.ExitCode == 0
}

// String returns a short human-readable summary of the run,
// e.g. "formatter: black --check --diff src (exit 1, 312ms)".
func (r *RunResult) String() string {
	return fmt.Sprintf("%s: %s %s (exit %d, %s)",
		r.Tool, filepath.Base(r.Binary), strings.Join(r.Args, " "),
		r.ExitCode, r.Duration.Round(time.Millisecond))
}

// DoctorCheck is a single line item in the doctor report: one piece of
// the environment that pycheck depends on, and whether it was found.
type DoctorCheck struct {
	// Name identifies what was checked (e.g. "project root", "black").
	Name string `json:"name"`

	// OK reports whether the check passed.
	OK bool `json:"ok"`

	// Detail is the resolved value on success (a path, a version string)
	// or the failure reason.
	Detail string `json:"detail,omitempty"`
}

// DoctorReport aggregates all environment checks for the doctor command.
type DoctorReport struct {
	// ProjectRoot is the resolved project root directory.
	ProjectRoot string `json:"projectRoot,omitempty"`

	// ConfigSource is the path of the loaded config file,
	// or empty when defaults are in effect.
	ConfigSource string `json:"configSource,omitempty"`

	// Checks lists the individual environment checks in display order.
	Checks []DoctorCheck `json:"checks"`
}

// Healthy reports whether every check in the report passed.
func (d *DoctorReport) Healthy() bool {
	for _, c := range d.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// ValidateTarget checks that a configured target path is usable as a
// check/format/typecheck target. Targets must be relative paths that
// stay inside the project root: absolute paths and ".."-escapes would
// silently run the tools over unrelated trees.
func ValidateTarget(target string) error {
	if target == "" {
		return fmt.Errorf("target path must not be empty")
	}
	if filepath.IsAbs(target) {
		return fmt.Errorf("target path %q must be relative to the project root", target)
	}
	clean := filepath.Clean(target)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("target path %q escapes the project root", target)
	}
	return nil
}

// ToolExitError reports that an external tool ran to completion and
// exited non-zero. It exists so the cli layer can distinguish "the tool
// found problems" (propagate the tool's exit code, print nothing — the
// tool already wrote its diagnostics) from CLI-side failures (print an
// error, use an enumerated exit code).
type ToolExitError struct {
	// Result is the completed run whose exit code is propagated.
	Result *RunResult
}

// Error satisfies the error interface.
func (e *ToolExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Result.Tool, e.Result.ExitCode)
}

// NewToolExitError wraps a completed, failed run.
func NewToolExitError(result *RunResult) *ToolExitError {
	return &ToolExitError{Result: result}
}

// ExitCode defines the CLI's own exit codes for failures that occur
// before any external tool runs. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
//
// When a tool does run, its exit code is propagated verbatim instead
// of being mapped through this enumeration.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitProjectNotFound indicates no project root could be resolved
	// from the working directory (no config file, pyproject.toml,
	// setup.cfg, or .git marker in any ancestor).
	ExitProjectNotFound ExitCode = 2

	// ExitConfigInvalid indicates the config file could not be parsed
	// or failed validation.
	ExitConfigInvalid ExitCode = 3

	// ExitToolchainNotFound indicates the virtualenv or a required tool
	// binary is missing.
	ExitToolchainNotFound ExitCode = 4

	// ExitInterrupted indicates the run was cancelled by a signal.
	// 130 matches the shell convention of 128 + SIGINT.
	ExitInterrupted ExitCode = 130
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
