package orchestration

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// was killed, e.g. when a child process inherited them.
const waitDelay = 500 * time.Millisecond

// CmdRunner executes an external command and returns its standard output.
type CmdRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec. The command is killed when ctx is
// done.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		command := strings.Join(cmd.Args, " ")
		return stdout.String(), fmt.Errorf("%q failed: %s: %w", command, strings.TrimSpace(stderr.String()), err)
	}

	return stdout.String(), nil
}
