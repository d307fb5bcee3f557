package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase identifies a stitch strategy.
type Phase int

const (
	// FastPath concatenates with stream copy.
	FastPath Phase = iota + 1
	// Fallback re-encodes every input.
	Fallback
)

func (p Phase) String() string {
	switch p {
	case FastPath:
		return "fast path"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase for JSON output.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(strings.ReplaceAll(p.String(), " ", "_")), nil
}

// Plan is an ordered list of clips and the file they are joined into.
type Plan struct {
	Paths  []string
	Output string
}

// Outcome describes a finished stitch.
type Outcome struct {
	Path  string `json:"path"`
	Phase Phase  `json:"phase"`
}

// Encoding holds the re-encode targets of the fallback phase.
type Encoding struct {
	VideoCodec   string
	AudioCodec   string
	Preset       string
	CRF          int
	AudioBitrate string
}

// DefaultEncoding returns H.264 video and AAC audio at a general purpose quality.
func DefaultEncoding() Encoding {
	return Encoding{
		VideoCodec:   "libx264",
		AudioCodec:   "aac",
		Preset:       "medium",
		CRF:          23,
		AudioBitrate: "192k",
	}
}

// args builds the ffmpeg arguments for a phase.
func (e Encoding) args(phase Phase, manifest, output string) []string {
	args := []string{"-hide_banner", "-nostdin", "-f", "concat", "-safe", "0", "-i", manifest}

	switch phase {
	case FastPath:
		args = append(args, "-c", "copy")
	case Fallback:
		args = append(args, "-c:v", e.VideoCodec)
		if e.Preset != "" {
			args = append(args, "-preset", e.Preset)
		}
		if e.CRF > 0 {
			args = append(args, "-crf", strconv.Itoa(e.CRF))
		}
		args = append(args, "-c:a", e.AudioCodec)
		if e.AudioBitrate != "" {
			args = append(args, "-b:a", e.AudioBitrate)
		}
	}

	return append(args, "-y", output)
}

// manifestLine renders a concat demuxer directive for an absolute path.
// Single quotes are closed, escaped and reopened.
func manifestLine(path string) string {
	return fmt.Sprintf("file '%s'\n", strings.ReplaceAll(path, "'", `'\''`))
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch strings.ReplaceAll(string(text), "_", " ") {
	case FastPath.String():
		*p = FastPath
	case Fallback.String():
		*p = Fallback
	default:
		*p = 0
	}
	return nil
}
