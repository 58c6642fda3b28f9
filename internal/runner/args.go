package runner

import (
	"github.com/mmr-tortoise/pycheck/internal/config"
)

// FormatFixArgs assembles the formatter argument list for write mode.
// Extra configured formatter arguments come first, then the targets:
// the overrides argument when given, otherwise the configured fix
// targets. Write mode is black's default, so no mode flag is needed.
func FormatFixArgs(cfg *config.Config, overrides []string) []string {
	targets := overrides
	if len(targets) == 0 {
		targets = cfg.FormatTargets
	}
	args := make([]string, 0, len(cfg.BlackArgs)+len(targets))
	args = append(args, cfg.BlackArgs...)
	args = append(args, targets...)
	return args
}

// FormatCheckArgs assembles the formatter argument list for check/diff
// mode: --check makes the run read-only and non-zero when any file
// would change, --diff prints what would change.
func FormatCheckArgs(cfg *config.Config, overrides []string) []string {
	targets := overrides
	if len(targets) == 0 {
		targets = cfg.CheckTargets
	}
	args := make([]string, 0, len(cfg.BlackArgs)+len(targets)+2)
	args = append(args, cfg.BlackArgs...)
	args = append(args, "--check", "--diff")
	args = append(args, targets...)
	return args
}

// TypeCheckArgs assembles the type checker argument list over the
// configured files and packages. The import-path construction
// (MYPYPATH) is environment work and lives in the toolchain package,
// not here.
func TypeCheckArgs(cfg *config.Config, overrides []string) []string {
	targets := overrides
	if len(targets) == 0 {
		targets = cfg.TypeCheckTargets
	}
	args := make([]string, 0, len(cfg.MypyArgs)+len(targets))
	args = append(args, cfg.MypyArgs...)
	args = append(args, targets...)
	return args
}
