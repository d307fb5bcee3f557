package pipeline

import (
	"context"
	"net/url"
	"path/filepath"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/source"
	"github.com/samber/lo"
)

// manualDir is the downloads subdirectory for remote inputs of Stitch.
const manualDir = "manual"

// IsRemote reports whether input should be downloaded rather than read from disk.
func IsRemote(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ManualOutput places a bare filename in the output directory and defaults the container to mp4.
func (p *Pipeline) ManualOutput(name string) string {
	if filepath.Ext(name) == "" {
		name += ".mp4"
	}

	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}

	return filepath.Join(p.options.OutputDir, name)
}

// Stitch joins inputs in the given order. Remote inputs are retrieved first and
// local ones are used as they are. Inputs that fail to download, and local
// paths that are missing or empty, are skipped and counted as failed.
func (p *Pipeline) Stitch(ctx context.Context, inputs []string, output string) (*Result, error) {
	output = p.ManualOutput(output)
	result := newResult(filepath.Base(output))
	result.Discovered = len(inputs)
	runLog(result).Infof("stitching %d inputs into %s", len(inputs), output)

	var (
		remote   []*source.Link
		ordinals []int
		clips    = make([]*source.MediaFile, len(inputs))
	)

	for i, input := range inputs {
		if IsRemote(input) {
			remote = append(remote, &source.Link{URL: input})
			ordinals = append(ordinals, i)
			continue
		}

		if !filesystem.IsClip(input) {
			runLog(result).Warnf("skipping #%d %s: not a media file", i, input)
			continue
		}

		clips[i] = &source.MediaFile{SourceURL: input, Path: input, Ordinal: i}
	}

	if len(remote) > 0 {
		dir := filepath.Join(p.options.DownloadsDir, manualDir)
		unlock, err := lockDir(dir)
		if err != nil {
			return p.fail(result, err)
		}
		defer unlock()

		p.transition(result, Retrieving)
		retrieved := p.retrieveIndexed(ctx, p.options.Retrievers(dir), remote, result)
		if err := ctx.Err(); err != nil {
			return p.fail(result, err)
		}

		for i, clip := range retrieved {
			if clip != nil {
				clip.Ordinal = ordinals[i]
				clips[ordinals[i]] = clip
			}
		}
	}

	return p.stitchClips(ctx, result, lo.Compact(clips), len(inputs), output)
}
