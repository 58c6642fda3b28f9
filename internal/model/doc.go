// Package model defines the domain types and value objects for the
// pycheck CLI.
//
// This package contains pure data structures with no external dependencies.
// It defines the tool taxonomy (ToolKind), the result of an external tool
// run (RunResult), the doctor report types, and the exit-code handling
// machinery (ExitCode, CLIError) that the cli package uses to translate
// errors into OS process exit codes.
//
// Exit codes fall into two groups: tool runs propagate the underlying
// process's exit code verbatim, while CLI-side setup failures use the
// small enumerated codes defined here so callers can distinguish
// "the formatter found diffs" from "the formatter was never run".
package model
