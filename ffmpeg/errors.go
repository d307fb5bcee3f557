package ffmpeg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolMissing means the ffmpeg executable could not be run.
	ErrToolMissing = errors.New("ffmpeg not found")

	// ErrNothingToStitch means no input of a plan exists on disk.
	ErrNothingToStitch = errors.New("no media files to stitch")

	// ErrFastPathFailed marks a failed stream copy concatenation.
	ErrFastPathFailed = errors.New("stream copy concatenation failed")

	// ErrFallbackFailed marks a failed re-encode concatenation.
	ErrFallbackFailed = errors.New("re-encode concatenation failed")
)

// stderrTail is how many trailing stderr lines an error message carries.
const stderrTail = 5

// PhaseError reports the failure of one stitch phase with the tool diagnostics.
// It matches ErrFastPathFailed or ErrFallbackFailed with errors.Is.
type PhaseError struct {
	Phase  Phase
	Stderr string
	Err    error
}

func (e *PhaseError) sentinel() error {
	if e.Phase == Fallback {
		return ErrFallbackFailed
	}
	return ErrFastPathFailed
}

func (e *PhaseError) Error() string {
	msg := e.sentinel().Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}

	if tail := lastLines(e.Stderr, stderrTail); tail != "" {
		msg += "\n" + tail
	}

	return msg
}

func (e *PhaseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
