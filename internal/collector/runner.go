package collector

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxStderrLine bounds a single stderr line forwarded to the logger.
const maxStderrLine = 1024 * 1024

// Runner executes a router command and returns what it printed on stdout.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// ShellRunner runs commands through a shell, e.g. "sh -c 'ssh root@router nlbw -c show'".
type ShellRunner struct {
	Shell string
	Log   logrus.FieldLogger
}

// Run starts the command, captures stdout and forwards stderr lines to the logger.
func (r ShellRunner) Run(ctx context.Context, command string) (string, error) {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start %q: %w", command, err)
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStderrLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || r.Log == nil {
			continue
		}
		r.Log.WithField("command", command).Debug(line)
	}
	if err := scanner.Err(); err != nil && r.Log != nil {
		r.Log.WithField("command", command).WithError(err).Debug("stopped reading stderr")
	}
	// The child blocks on a full stderr pipe until it is drained.
	_, _ = io.Copy(io.Discard, stderr)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("command %q: %w", command, ctx.Err())
		}
		return "", fmt.Errorf("command %q failed: %w", command, err)
	}

	return stdout.String(), nil
}
