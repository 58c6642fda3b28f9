// Package cli — fmt.go implements the "pycheck fmt" command.
//
// fmt runs the formatter in write mode, rewriting the project's source
// tree in place. It is the fix counterpart of "pycheck check": after a
// successful fmt run, check exits 0 over the same targets.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pycheck/internal/model"
	"github.com/mmr-tortoise/pycheck/internal/runner"
	"github.com/mmr-tortoise/pycheck/internal/toolchain"
)

// NewFmtCommand creates the "fmt" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFmtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Reformat the project with the formatter",
		Long: `Run the formatter in write mode over the project.

Without arguments, the configured format targets are rewritten (the whole
project by default). Positional paths, relative to the project root,
restrict the run to just those files or directories.

The exit code is the formatter's own exit code: 0 on success, non-zero
when the formatter itself fails.

Examples:
  pycheck fmt
  pycheck fmt open_rack_vent orvcli.py
  pycheck fmt --verbose`,

		// ArbitraryArgs: any number of target overrides.
		Args: cobra.ArbitraryArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.Context(), args)
		},
	}

	return cmd
}

// runFmt is the main logic function for the fmt command.
func runFmt(ctx context.Context, overrides []string) error {
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
		Args:   runner.FormatFixArgs(sess.Config, overrides),
		Dir:    sess.Root,
		Env:    sess.Toolchain.Environ(toolchain.EnvOptions{}),
	})
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return model.NewToolExitError(result)
	}

	printRunSuccess(result)
	return nil
}
