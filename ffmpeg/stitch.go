// Package ffmpeg joins retrieved clips into a single reel with the ffmpeg concat demuxer.
//
// Stitching tries a stream copy first, which is fast but needs every clip to share
// codec parameters. When that fails the same manifest is re-encoded once.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/log"
)

// Options configure a Stitcher.
type Options struct {
	Executable string
	Encoding   Encoding
	// Timeout bounds each phase. Zero disables the limit.
	Timeout  time.Duration
	Executor Executor
}

// Stitcher runs stitch plans.
type Stitcher struct {
	executable string
	encoding   Encoding
	timeout    time.Duration
	executor   Executor

	probeMu  sync.Mutex
	probed   bool
	probeErr error
}

// New returns a Stitcher. Empty options fall back to ffmpeg on PATH and DefaultEncoding.
func New(options Options) *Stitcher {
	if options.Executable == "" {
		options.Executable = "ffmpeg"
	}

	if options.Encoding.VideoCodec == "" || options.Encoding.AudioCodec == "" {
		options.Encoding = DefaultEncoding()
	}

	if options.Executor == nil {
		options.Executor = ExecExecutor{}
	}

	return &Stitcher{
		executable: options.Executable,
		encoding:   options.Encoding,
		timeout:    options.Timeout,
		executor:   options.Executor,
	}
}

// Probe checks that the executable runs. The first answer is kept unless
// ctx ended before the executable could respond.
func (s *Stitcher) Probe(ctx context.Context) error {
	s.probeMu.Lock()
	defer s.probeMu.Unlock()

	if s.probed {
		return s.probeErr
	}

	result := s.executor.Run(ctx, s.executable, "-version")
	if err := ctx.Err(); err != nil {
		return err
	}

	if result.Err != nil {
		s.probeErr = fmt.Errorf("%w: %s: %w", ErrToolMissing, s.executable, result.Err)
	}
	s.probed = true

	return s.probeErr
}

// Stitch joins the existing files of plan into plan.Output, replacing it if present.
//
// Missing and empty paths are skipped. The manifest is written next to the
// output and deleted after a successful phase; when both phases fail it is
// kept for inspection and a *PhaseError for the fallback is returned.
func (s *Stitcher) Stitch(ctx context.Context, plan Plan) (Outcome, error) {
	if err := s.Probe(ctx); err != nil {
		return Outcome{}, err
	}

	inputs := existing(plan.Paths)
	if len(inputs) == 0 {
		return Outcome{}, ErrNothingToStitch
	}

	output, err := filepath.Abs(plan.Output)
	if err != nil {
		return Outcome{}, err
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(output), os.ModePerm); err != nil {
		return Outcome{}, err
	}

	manifest, err := writeManifest(filepath.Dir(output), inputs)
	if err != nil {
		return Outcome{}, fmt.Errorf("write manifest: %w", err)
	}

	log.Infof("stitching %d clips into %s", len(inputs), output)

	fast := s.run(ctx, FastPath, manifest, output)
	if fast == nil {
		return s.done(manifest, output, FastPath), nil
	}

	log.Warn(fast)
	if ctx.Err() != nil {
		return Outcome{}, fast
	}

	if fallback := s.run(ctx, Fallback, manifest, output); fallback != nil {
		log.Error(fallback)
		return Outcome{}, fallback
	}

	return s.done(manifest, output, Fallback), nil
}

func (s *Stitcher) run(ctx context.Context, phase Phase, manifest, output string) *PhaseError {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Infof("ffmpeg %s: %s", phase, manifest)
	result := s.executor.Run(ctx, s.executable, s.encoding.args(phase, manifest, output)...)
	if result.Err == nil {
		return nil
	}

	err := result.Err
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}

	return &PhaseError{Phase: phase, Stderr: result.Stderr, Err: err}
}

func (s *Stitcher) done(manifest, output string, phase Phase) Outcome {
	if err := filesystem.API().Remove(manifest); err != nil {
		log.Warnf("remove manifest %s: %s", manifest, err)
	}

	log.Infof("stitched %s (%s)", output, phase)
	return Outcome{Path: output, Phase: phase}
}

// existing returns the absolute form of every path that names a non-empty regular file.
func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}

		if !filesystem.IsClip(p) {
			log.Warnf("skipping %q: not a media file", p)
			continue
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		out = append(out, abs)
	}
	return out
}

func writeManifest(dir string, paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(manifestLine(p))
	}

	manifest := filepath.Join(dir, "concat_"+uuid.NewString()+".txt")
	if err := filesystem.API().WriteFile(manifest, []byte(b.String()), 0o644); err != nil {
		return "", err
	}

	return manifest, nil
}
