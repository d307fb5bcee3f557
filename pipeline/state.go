package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoopreel/hoopreel/ffmpeg"
	"github.com/hoopreel/hoopreel/source"
)

// State is a pipeline run stage.
type State int

const (
	Idle State = iota
	Discovering
	Retrieving
	Stitching
	Done
	Failed
)

var stateNames = map[State]string{
	Idle:        "idle",
	Discovering: "discovering",
	Retrieving:  "retrieving",
	Stitching:   "stitching",
	Done:        "done",
	Failed:      "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions follow.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for state, n := range stateNames {
		if n == name {
			*s = state
			return nil
		}
	}

	*s = Idle
	return nil
}

// Result summarizes a single run.
type Result struct {
	RunID      uuid.UUID    `json:"run_id"`
	Subject    string       `json:"subject"`
	State      State        `json:"state"`
	Output     string       `json:"output,omitempty"`
	Phase      ffmpeg.Phase `json:"phase,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	Discovered int          `json:"discovered"`
	Retrieved  int          `json:"retrieved"`
	Failed     int          `json:"failed"`

	// Clips are the files handed to the stitcher, in ordinal order.
	Clips []*source.MediaFile `json:"clips,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func newResult(subject string) *Result {
	return &Result{
		RunID:     uuid.New(),
		Subject:   subject,
		State:     Idle,
		StartedAt: time.Now(),
	}
}

// Duration is the wall time of a finished run.
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
