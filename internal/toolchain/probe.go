package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// defaultProbeTimeout bounds how long a version probe may take. Tool
// startup is normally well under a second; a hung interpreter should
// not stall the doctor command indefinitely.
const defaultProbeTimeout = 10 * time.Second

// Probe runs "<binPath> --version" under the given environment and
// returns the first line of its output. The doctor command uses this
// both as an existence check and to surface the installed version.
func Probe(ctx context.Context, binPath string, environ []string) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, binPath, "--version")
	cmd.Env = environ

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s --version failed: %w", binPath, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}
