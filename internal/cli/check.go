// Package cli — check.go implements the "pycheck check" command.
//
// check runs the formatter in check/diff mode: read-only, printing a
// diff for every file that would be reformatted and exiting non-zero
// when any such file exists. This is the CI gate counterpart of
// "pycheck fmt".
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pycheck/internal/model"
	"github.com/mmr-tortoise/pycheck/internal/runner"
	"github.com/mmr-tortoise/pycheck/internal/toolchain"
)

// NewCheckCommand creates the "check" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify formatting without modifying files",
		Long: `Run the formatter in check/diff mode over the configured check targets.

No files are modified. For every file that would be reformatted, a diff
is printed and the exit code is non-zero (the formatter's own code, 1
for diffs). A tree that "pycheck fmt" just rewrote always passes.

Positional paths, relative to the project root, override the configured
target list.

Examples:
  pycheck check
  pycheck check open_rack_vent test
  pycheck check --json`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args)
		},
	}

	return cmd
}

// runCheck is the main logic function for the check command.
func runCheck(ctx context.Context, overrides []string) error {
	if err := validateOverrides(overrides); err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}

	binary, err := sess.Toolchain.LookTool(sess.Config.BlackBin)
	if err != nil {
		return err
	}
	VerboseLog("Formatter: %s", binary)

	result, err := runner.New().Run(ctx, runner.Spec{
		Tool:   model.ToolFormatter,
		Binary: binary,
		Args:   runner.FormatCheckArgs(sess.Config, overrides),
		Dir:    sess.Root,
		Env:    sess.Toolchain.Environ(toolchain.EnvOptions{}),
	})
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		// The diff is already on the user's terminal; propagate the
		// formatter's exit code without further commentary.
		return model.NewToolExitError(result)
	}

	printRunSuccess(result)
	return nil
}
