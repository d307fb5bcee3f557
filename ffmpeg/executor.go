package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Executor runs an external command.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) ExecResult
}

// ExecExecutor runs commands with os/exec, capturing stderr.
type ExecExecutor struct{}

func (ExecExecutor) Run(ctx context.Context, name string, args ...string) ExecResult {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return ExecResult{
		Stderr: stderr.String(),
		Err:    err,
	}
}

// LookPath resolves the ffmpeg executable, defaulting to "ffmpeg".
func LookPath(executable string) (string, error) {
	if executable == "" {
		executable = "ffmpeg"
	}

	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToolMissing, err)
	}
	return path, nil
}
