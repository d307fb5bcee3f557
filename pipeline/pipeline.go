// Package pipeline runs discovery, retrieval and stitching for one subject.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hoopreel/hoopreel/ffmpeg"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/util"
	"github.com/samber/lo"
)

var (
	// ErrNoHighlightsFound means discovery returned no links.
	ErrNoHighlightsFound = errors.New("no highlights found")

	// ErrNoMediaRetrieved means every link failed to download.
	ErrNoMediaRetrieved = errors.New("no media could be retrieved")
)

// Discoverer finds highlight links for a subject.
type Discoverer interface {
	Discover(ctx context.Context, subject string, maxResults int) ([]*source.Link, error)
}

// Retriever downloads a url to a file named after stem.
type Retriever interface {
	Retrieve(ctx context.Context, url, stem string) (string, error)
}

// Stitcher joins local clips.
type Stitcher interface {
	Stitch(ctx context.Context, plan ffmpeg.Plan) (ffmpeg.Outcome, error)
}

// Options wire the collaborators of a Pipeline.
type Options struct {
	Source     source.Source
	Discoverer Discoverer

	// Retrievers returns a Retriever writing into the given directory.
	Retrievers func(dir string) Retriever
	Stitcher   Stitcher

	// Workers bounds concurrent retrievals. Values below 2 retrieve sequentially.
	Workers int

	// DownloadsDir holds one directory per subject.
	DownloadsDir string
	OutputDir    string

	// OnState is called on every transition.
	OnState func(State)
}

// Pipeline is safe for concurrent runs of different subjects.
type Pipeline struct {
	options Options
}

func New(options Options) *Pipeline {
	if options.Workers < 1 {
		options.Workers = 1
	}

	return &Pipeline{options: options}
}

// OutputName is the reel filename for subject.
func OutputName(subject string) string {
	return util.SanitizeFilename(subject) + "_highlight_reel.mp4"
}

// SubjectDir is where clips of subject are downloaded.
func (p *Pipeline) SubjectDir(subject string) string {
	return filepath.Join(p.options.DownloadsDir, util.SanitizeFilename(subject))
}

// Run produces a highlight reel for subject from at most maxResults links.
// The returned result is always non-nil and mirrors the returned error.
func (p *Pipeline) Run(ctx context.Context, subject string, maxResults int) (*Result, error) {
	result := newResult(subject)
	runLog(result).Infof("subject %q, max %d", subject, maxResults)

	dir := p.SubjectDir(subject)
	unlock, err := lockDir(dir)
	if err != nil {
		return p.fail(result, err)
	}
	defer unlock()

	p.transition(result, Discovering)
	links, err := p.options.Discoverer.Discover(ctx, subject, maxResults)
	if err != nil {
		return p.fail(result, err)
	}

	result.Discovered = len(links)
	if len(links) == 0 {
		return p.fail(result, ErrNoHighlightsFound)
	}

	p.transition(result, Retrieving)
	clips := lo.Compact(p.retrieveIndexed(ctx, p.options.Retrievers(dir), links, result))
	if err := ctx.Err(); err != nil {
		return p.fail(result, err)
	}

	return p.stitchClips(ctx, result, clips, len(links), filepath.Join(p.options.OutputDir, OutputName(subject)))
}

// stitchClips counts the surviving clips against attempted and joins them into output.
func (p *Pipeline) stitchClips(ctx context.Context, result *Result, clips []*source.MediaFile, attempted int, output string) (*Result, error) {
	result.Clips = clips
	result.Retrieved = len(clips)
	result.Failed = attempted - len(clips)
	if len(clips) == 0 {
		return p.fail(result, ErrNoMediaRetrieved)
	}

	p.transition(result, Stitching)
	outcome, err := p.options.Stitcher.Stitch(ctx, ffmpeg.Plan{
		Paths: lo.Map(clips, func(clip *source.MediaFile, _ int) string {
			return clip.Path
		}),
		Output: output,
	})
	if err != nil {
		return p.fail(result, err)
	}

	result.Output = outcome.Path
	result.Phase = outcome.Phase
	p.finish(result, Done)
	runLog(result).Infof("reel written to %s", result.Output)
	return result, nil
}

// retrieveIndexed downloads links on at most Workers goroutines. The clip of
// links[i] is stored at index i with ordinal i; failed items are left nil.
func (p *Pipeline) retrieveIndexed(ctx context.Context, retriever Retriever, links []*source.Link, result *Result) []*source.MediaFile {
	clips := make([]*source.MediaFile, len(links))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, p.options.Workers)
	)

	for ordinal, link := range links {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(ordinal int, url string) {
			defer wg.Done()
			defer func() { <-sem }()

			path, err := retriever.Retrieve(ctx, p.resolve(ctx, url), source.Stem(ordinal))
			if err != nil {
				runLog(result).Warnf("skipping #%d %s: %s", ordinal, url, err)
				return
			}

			clips[ordinal] = &source.MediaFile{SourceURL: url, Path: path, Ordinal: ordinal}
		}(ordinal, link.URL)
	}

	wg.Wait()
	return clips
}

// resolve replaces a page url with the first media reference found on it.
func (p *Pipeline) resolve(ctx context.Context, url string) string {
	src := p.options.Source
	if src == nil || !src.IsPage(url) {
		return url
	}

	refs, err := src.ResolveMedia(ctx, url)
	if err != nil {
		log.Warnf("resolve %s: %s", url, err)
		return url
	}

	if len(refs) == 0 {
		return url
	}

	log.Debugf("resolved %s to %s", url, refs[0])
	return refs[0]
}

func (p *Pipeline) transition(result *Result, state State) {
	result.State = state
	runLog(result).Infof("state %s", state)

	if p.options.OnState != nil {
		p.options.OnState(state)
	}
}

func (p *Pipeline) finish(result *Result, state State) {
	p.transition(result, state)
	result.FinishedAt = time.Now()
}

func (p *Pipeline) fail(result *Result, err error) (*Result, error) {
	result.Reason = err.Error()
	p.finish(result, Failed)
	runLog(result).Errorf("%s", err)
	return result, err
}

// Describe renders a one-line summary of result.
func Describe(result *Result) string {
	if result.State == Failed {
		return fmt.Sprintf("%s: %s", result.Subject, result.Reason)
	}

	return fmt.Sprintf(
		"%s: %s from %s",
		result.Subject,
		result.Output,
		util.Quantify(result.Retrieved, "clip", "clips"),
	)
}

func runLog(result *Result) log.Entry {
	return log.WithFields(log.Fields{"run": result.RunID.String(), "subject": result.Subject})
}
