// Package runner executes the external formatter and type checker
// processes for the pycheck CLI.
//
// Tool output is never captured or reformatted: stdout and stderr
// stream through to the user exactly as the tool produced them, and
// the tool's exit code is reported verbatim in the RunResult. The CLI's
// only contribution on the output path is its own exit status.
//
// The package also assembles the fixed argument lists for the three
// operations (format-fix, format-check, typecheck) from the resolved
// configuration, so that the cli package contains orchestration only.
package runner
