package retrieve

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// YtDLP fetches media with the yt-dlp executable.
type YtDLP struct {
	Executable string
	Format     string
}

// Fetch downloads a single video, never a playlist.
func (y *YtDLP) Fetch(ctx context.Context, url, output string) error {
	cmd := ytdlp.New().
		Output(output).
		NoPlaylist().
		NoProgress()

	if y.Format != "" {
		cmd.Format(y.Format)
	}

	if y.Executable != "" {
		cmd.SetExecutable(y.Executable)
	}

	result, err := cmd.Run(ctx, url)
	if err != nil {
		if result != nil && result.Stderr != "" {
			return fmt.Errorf("yt-dlp: %w: %s", err, lastLine(result.Stderr))
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}

	return nil
}

// LookPath resolves the yt-dlp executable.
func (y *YtDLP) LookPath() (string, error) {
	name := y.Executable
	if name == "" {
		name = "yt-dlp"
	}
	return exec.LookPath(name)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
