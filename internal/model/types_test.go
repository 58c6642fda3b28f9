package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseToolKind_Valid verifies that the two known tool kinds parse
// case-insensitively.
func TestParseToolKind_Valid(t *testing.T) {
	kind, err := ParseToolKind("formatter")
	require.NoError(t, err)
	assert.Equal(t, ToolFormatter, kind)

	kind, err = ParseToolKind("TypeChecker")
	require.NoError(t, err)
	assert.Equal(t, ToolTypeChecker, kind)
}

// TestParseToolKind_Invalid verifies that unknown kinds are rejected
// with an error naming the valid values.
func TestParseToolKind_Invalid(t *testing.T) {
	_, err := ParseToolKind("linter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatter, typechecker")
}

// TestRunResult_Succeeded verifies the zero/non-zero exit interpretation.
func TestRunResult_Succeeded(t *testing.T) {
	ok := RunResult{Tool: ToolFormatter, ExitCode: 0}
	assert.True(t, ok.Succeeded())

	failed := RunResult{Tool: ToolFormatter, ExitCode: 1}
	assert.False(t, failed.Succeeded())
}

// TestRunResult_String verifies the human-readable summary contains the
// tool kind, binary base name, arguments, and exit code.
func TestRunResult_String(t *testing.T) {
	r := RunResult{
		Tool:     ToolFormatter,
		Binary:   "/project/.venv/bin/black",
		Args:     []string{"--check", "--diff", "src"},
		ExitCode: 1,
		Duration: 312 * time.Millisecond,
	}

	s := r.String()
	assert.Contains(t, s, "formatter")
	assert.Contains(t, s, "black --check --diff src")
	assert.Contains(t, s, "exit 1")
	// The directory portion of the binary path should not appear.
	assert.NotContains(t, s, "/project/.venv")
}

// TestValidateTarget_Relative verifies that ordinary relative targets
// are accepted, including nested paths and the current directory.
func TestValidateTarget_Relative(t *testing.T) {
	assert.NoError(t, ValidateTarget("."))
	assert.NoError(t, ValidateTarget("src"))
	assert.NoError(t, ValidateTarget("open_rack_vent/control_api"))
	assert.NoError(t, ValidateTarget("orvcli.py"))
}

// TestValidateTarget_Rejected verifies that empty, absolute, and
// root-escaping targets are all rejected.
func TestValidateTarget_Rejected(t *testing.T) {
	assert.Error(t, ValidateTarget(""))
	assert.Error(t, ValidateTarget("/etc"))
	assert.Error(t, ValidateTarget(".."))
	assert.Error(t, ValidateTarget("../sibling"))
	assert.Error(t, ValidateTarget("src/../../escape"))
}

// TestDoctorReport_Healthy verifies that a report is healthy only when
// every individual check passed.
func TestDoctorReport_Healthy(t *testing.T) {
	report := DoctorReport{
		Checks: []DoctorCheck{
			{Name: "project root", OK: true},
			{Name: "black", OK: true},
		},
	}
	assert.True(t, report.Healthy())

	report.Checks = append(report.Checks, DoctorCheck{Name: "mypy", OK: false, Detail: "not found"})
	assert.False(t, report.Healthy())
}

// TestCLIError_ErrorAndUnwrap verifies the error message formatting and
// that errors.As/errors.Is can traverse the wrapped chain.
func TestCLIError_ErrorAndUnwrap(t *testing.T) {
	underlying := fmt.Errorf("venv missing")
	err := WrapCLIError(ExitToolchainNotFound, "toolchain unavailable", underlying)

	assert.Equal(t, "toolchain unavailable: venv missing", err.Error())
	assert.Equal(t, underlying, errors.Unwrap(err))

	var cliErr *CLIError
	require.True(t, errors.As(error(err), &cliErr))
	assert.Equal(t, ExitToolchainNotFound, cliErr.Code)
}

// TestToolExitError verifies the message format and that the wrapped
// run result is reachable through errors.As.
func TestToolExitError(t *testing.T) {
	result := &RunResult{Tool: ToolTypeChecker, ExitCode: 2}
	var err error = NewToolExitError(result)

	assert.Equal(t, "typechecker exited with code 2", err.Error())

	var toolErr *ToolExitError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 2, toolErr.Result.ExitCode)
}

// TestNewCLIError verifies the message-only constructor.
func TestNewCLIError(t *testing.T) {
	err := NewCLIError(ExitProjectNotFound, "no project root found")
	assert.Equal(t, "no project root found", err.Error())
	assert.Nil(t, errors.Unwrap(err))
	assert.Equal(t, ExitProjectNotFound, err.Code)
}
