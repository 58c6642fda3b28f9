// Package cli — doctor.go implements the "pycheck doctor" command.
//
// doctor diagnoses the environment the other commands depend on:
// project root, config file, virtualenv, tool binaries and versions,
// and the configured check targets. It never runs the tools over the
// project; version probes are the only processes it starts.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pycheck/internal/config"
	"github.com/mmr-tortoise/pycheck/internal/model"
	"github.com/mmr-tortoise/pycheck/internal/project"
	"github.com/mmr-tortoise/pycheck/internal/toolchain"
)

// NewDoctorCommand creates the "doctor" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the project's check environment",
		Long: `Check that everything the fmt, check, and typecheck commands need is in
place: the project root, the config file, the virtualenv, and the tool
binaries (with their versions).

Exits 0 when the environment is healthy and 1 otherwise.

Examples:
  pycheck doctor
  pycheck doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}

	return cmd
}

// runDoctor builds the report from the global flag state, prints it,
// and turns an unhealthy report into a non-zero exit.
func runDoctor(ctx context.Context) error {
	startDir, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	report := buildDoctorReport(ctx, startDir, rootDir, configPath)
	printDoctorReport(report)

	if !report.Healthy() {
		return model.NewCLIError(model.ExitGeneralError, "environment is not healthy")
	}
	return nil
}

// buildDoctorReport runs every environment check, converting failures
// into report entries instead of aborting. Checks that depend on an
// earlier failure (e.g. tool resolution without a root) are skipped,
// so the report never contains misleading cascade errors.
func buildDoctorReport(ctx context.Context, startDir, explicitRoot, explicitConfig string) *model.DoctorReport {
	report := &model.DoctorReport{}

	// Check 1: project root.
	root, err := resolveDoctorRoot(startDir, explicitRoot)
	if err != nil {
		report.Checks = append(report.Checks,
			model.DoctorCheck{Name: "project root", OK: false, Detail: err.Error()})
		return report
	}
	report.ProjectRoot = root
	report.Checks = append(report.Checks,
		model.DoctorCheck{Name: "project root", OK: true, Detail: root})

	// Check 2: configuration.
	cfg, source, err := config.Resolve(root, explicitConfig)
	if err != nil {
		report.Checks = append(report.Checks,
			model.DoctorCheck{Name: "config", OK: false, Detail: err.Error()})
		return report
	}
	report.ConfigSource = source
	configDetail := source
	if configDetail == "" {
		configDetail = "built-in defaults"
	}
	report.Checks = append(report.Checks,
		model.DoctorCheck{Name: "config", OK: true, Detail: configDetail})

	// Check 3: virtualenv. A configured-but-missing venv is a failure;
	// a project that simply has none falls back to PATH tools, which
	// the tool checks below will judge.
	tc, err := toolchain.Resolve(root, cfg)
	if err != nil {
		report.Checks = append(report.Checks,
			model.DoctorCheck{Name: "virtualenv", OK: false, Detail: err.Error()})
		return report
	}
	venvDetail := tc.VenvDir
	if !tc.HasVenv() {
		venvDetail = "none found (tools resolve from PATH)"
	}
	report.Checks = append(report.Checks,
		model.DoctorCheck{Name: "virtualenv", OK: true, Detail: venvDetail})

	// Checks 4 and 5: the tool binaries, with versions.
	environ := tc.Environ(toolchain.EnvOptions{})
	report.Checks = append(report.Checks, probeTool(ctx, tc, cfg.BlackBin, "black", environ))
	report.Checks = append(report.Checks, probeTool(ctx, tc, cfg.MypyBin, "mypy", environ))

	// Check 6: the configured check targets exist and contain code.
	files, err := project.DiscoverPythonFiles(root, cfg.CheckTargets)
	if err != nil {
		report.Checks = append(report.Checks,
			model.DoctorCheck{Name: "check targets", OK: false, Detail: err.Error()})
		return report
	}
	report.Checks = append(report.Checks, model.DoctorCheck{
		Name:   "check targets",
		OK:     true,
		Detail: fmt.Sprintf("%d Python files under %d targets", len(files), len(cfg.CheckTargets)),
	})

	return report
}

// resolveDoctorRoot mirrors the session root resolution but returns
// plain errors for the report.
func resolveDoctorRoot(startDir, explicitRoot string) (string, error) {
	if explicitRoot != "" {
		abs, err := filepath.Abs(explicitRoot)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("--root %s is not a directory", explicitRoot)
		}
		return abs, nil
	}
	return project.ResolveRoot(startDir)
}

// probeTool resolves one tool binary and probes its version, folding
// both steps into a single report entry.
func probeTool(ctx context.Context, tc *toolchain.Toolchain, bin, name string, environ []string) model.DoctorCheck {
	path, err := tc.LookTool(bin)
	if err != nil {
		return model.DoctorCheck{Name: name, OK: false, Detail: err.Error()}
	}

	version, err := toolchain.Probe(ctx, path, environ)
	if err != nil {
		return model.DoctorCheck{Name: name, OK: false,
			Detail: fmt.Sprintf("%s: %v", path, err)}
	}
	return model.DoctorCheck{Name: name, OK: true,
		Detail: fmt.Sprintf("%s (%s)", path, version)}
}

// printDoctorReport outputs the report in text or JSON format,
// depending on the global --json flag.
func printDoctorReport(report *model.DoctorReport) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	for _, check := range report.Checks {
		status := "ok  "
		if !check.OK {
			status = "FAIL"
		}
		fmt.Printf("%s  %-14s %s\n", status, check.Name, check.Detail)
	}
}
