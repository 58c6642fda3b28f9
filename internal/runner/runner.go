package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/mmr-tortoise/pycheck/internal/model"
)

// Spec describes one external tool invocation: which binary to run,
// with which arguments, in which directory, under which environment.
type Spec struct {
	// Tool is the kind of tool being run, carried through to the result.
	Tool model.ToolKind

	// Binary is the resolved executable path.
	Binary string

	// Args is the argument list, excluding the binary name.
	Args []string

	// Dir is the working directory for the process, normally the
	// project root. Running from the root means relative targets and
	// the tools' own config discovery (pyproject.toml) behave
	// identically from any invocation directory.
	Dir string

	// Env is the full environment for the process, normally the
	// activated toolchain environment.
	Env []string
}

// Runner executes tool processes. Output writers default to the
// process's own stdout/stderr; tests substitute buffers.
type Runner struct {
	// Stdout receives the tool's standard output unmodified.
	Stdout io.Writer

	// Stderr receives the tool's standard error unmodified.
	Stderr io.Writer
}

// New creates a Runner wired to the current process's stdout/stderr.
func New() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the spec and returns the run's result.
//
// A non-zero tool exit is NOT an error here: the RunResult carries the
// code and the caller decides what it means (for check runs, a diff;
// for typecheck runs, type errors). Run returns an error only when the
// tool could not be run at all (missing binary, permission problem) or
// the context was cancelled mid-run.
func (r *Runner) Run(ctx context.Context, spec Spec) (*model.RunResult, error) {
	cmd := exec.CommandContext(ctx, spec.Binary, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &model.RunResult{
		Tool:     spec.Tool,
		Binary:   spec.Binary,
		Args:     spec.Args,
		Duration: duration,
	}

	if err == nil {
		return result, nil
	}

	// Cancellation takes precedence: exec reports a killed process as
	// an ExitError, but the user-visible cause is the interrupt.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, model.WrapCLIError(model.ExitInterrupted,
			fmt.Sprintf("%s run interrupted", spec.Tool), ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	// The process never started (binary missing, not executable, ...).
	return nil, model.WrapCLIError(model.ExitToolchainNotFound,
		fmt.Sprintf("failed to run %s", spec.Binary), err)
}
