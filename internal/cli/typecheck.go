// Package cli — typecheck.go implements the "pycheck typecheck" command.
//
// typecheck runs the type checker over the configured files and
// packages. For the duration of the run, MYPYPATH is constructed by
// prefixing the configured project-relative entries onto any value
// inherited from the invoking environment, so stub and source roots
// resolve the same way they did for the original scripts.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pycheck/internal/model"
	"github.com/mmr-tortoise/pycheck/internal/runner"
	"github.com/mmr-tortoise/pycheck/internal/toolchain"
)

// NewTypecheckCommand creates the "typecheck" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewTypecheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typecheck [targets...]",
		Short: "Run the static type checker",
		Long: `Run the type checker over the configured files and packages.

The exit code is the type checker's own exit code: 0 when no type errors
exist, non-zero otherwise. Positional targets, relative to the project
root, override the configured list.

Examples:
  pycheck typecheck
  pycheck typecheck orvcli.py open_rack_vent
  pycheck typecheck --verbose`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypecheck(cmd.Context(), args)
		},
	}

	return cmd
}

// runTypecheck is the main logic function for the typecheck command.
func runTypecheck(ctx context.Context, overrides []string) error {
	if err := validateOverrides(overrides); err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}

	binary, err := sess.Toolchain.LookTool(sess.Config.MypyBin)
	if err != nil {
		return err
	}
	VerboseLog("Type checker: %s", binary)
	if len(sess.Config.MypyPath) > 0 {
		VerboseLog("MYPYPATH prefix: %v", sess.Config.MypyPath)
	}

	result, err := runner.New().Run(ctx, runner.Spec{
		Tool:   model.ToolTypeChecker,
		Binary: binary,
		Args:   runner.TypeCheckArgs(sess.Config, overrides),
		Dir:    sess.Root,
		Env: sess.Toolchain.Environ(toolchain.EnvOptions{
			MypyPathPrefix: sess.Config.MypyPath,
		}),
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
