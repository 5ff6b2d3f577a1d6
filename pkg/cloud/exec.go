package cloud

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner abstracts external command execution.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// Run executes name with args and returns its captured output streams. The
// process is killed when ctx is done.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	// #nosec G204 - callers pass fixed command names
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
