// Package cli implements the cobra-based CLI commands for pycheck.
//
// Each subcommand (fmt, check, typecheck, doctor) is defined in its own
// file within this package. This file defines the root command that
// serves as the parent for all subcommands, handles global flags, and
// translates errors into process exit codes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pycheck/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// Tool output (diffs, type errors) always passes through as-is;
	// this flag only affects pycheck's own result and error reporting.
	jsonOutput bool

	// verbose enables detailed narration on stderr.
	verbose bool

	// configPath is an explicit config file path (--config). When empty,
	// the config file is discovered at the project root.
	configPath string

	// rootDir is an explicit project root (--root). When empty, the root
	// is resolved by walking upward from the working directory.
	rootDir string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only provides
// help text and global flags. Actual functionality is provided by
// subcommands (fmt, check, typecheck, doctor).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pycheck",
		Short: "Formatter and type-checker front end for Python projects",
		Long: `pycheck wraps a Python project's formatter (black) and type checker (mypy)
behind one binary with a stable contract: resolve the project root, activate
the project's virtualenv, run the tool, and exit with the tool's exit code.

It replaces the usual trio of check scripts (fix formatting, check formatting,
check types) and behaves identically from any directory inside the project.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: discovered at the project root)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (default: resolved from the working directory)")

	// Register subcommands. Each subcommand is defined in its own file
	// and returns a *cobra.Command.
	rootCmd.AddCommand(NewFmtCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewTypecheckCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// The command runs under a signal-aware context so that an interrupt
// (Ctrl-C) or SIGTERM cancels any in-flight tool process; the runner
// reports that as ExitInterrupted (130).
//
// Exit code translation:
//   - ToolExitError: the tool ran and failed; its exit code propagates
//     verbatim and nothing extra is printed — the tool already wrote
//     its diagnostics (diffs, type errors) to the user.
//   - CLIError: a CLI-side failure; the message is printed and the
//     enumerated code is used.
//   - anything else: printed with exit code 1.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var toolErr *model.ToolExitError
		if errors.As(err, &toolErr) {
			VerboseLog("%s", toolErr.Result.String())
			os.Exit(toolErr.Result.ExitCode)
		}

		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode: stdout is reserved for
		// successful command output and tool passthrough.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
