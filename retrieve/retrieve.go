// Package retrieve downloads highlight media to deterministic local paths.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/util"
)

// ErrItemRetrievalFailed marks a link that did not produce a media file.
var ErrItemRetrievalFailed = errors.New("item retrieval failed")

// Fetcher runs the external retrieval tool for url, writing to the output template.
// The template contains "%(ext)s" where the tool substitutes the container extension.
type Fetcher interface {
	Fetch(ctx context.Context, url, output string) error
}

// partialSuffixes are the in-progress artifacts the retrieval tool leaves behind.
var partialSuffixes = []string{".part", ".ytdl", ".temp"}

// Retriever stores media for links in a single directory.
type Retriever struct {
	dir     string
	fetcher Fetcher
	timeout time.Duration
}

// New returns a Retriever writing into dir. A non-positive timeout disables the limit.
func New(dir string, fetcher Fetcher, timeout time.Duration) *Retriever {
	return &Retriever{dir: dir, fetcher: fetcher, timeout: timeout}
}

// Dir returns the directory media is written to.
func (r *Retriever) Dir() string {
	return r.dir
}

// Retrieve downloads url to a file named stem plus the extension chosen by the tool
// and returns its path. Files left for stem by earlier runs are deleted first.
func (r *Retriever) Retrieve(ctx context.Context, url, stem string) (string, error) {
	if err := filesystem.API().MkdirAll(r.dir, os.ModePerm); err != nil {
		return "", err
	}

	if err := r.removeStale(stem); err != nil {
		return "", fmt.Errorf("remove stale files for %s: %w", stem, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log.Infof("retrieving %s as %s", url, stem)
	output := filepath.Join(r.dir, stem+".%(ext)s")
	if err := r.fetcher.Fetch(ctx, url, output); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrItemRetrievalFailed, url, err)
	}

	path, err := r.find(stem)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrItemRetrievalFailed, url, err)
	}

	log.Infof("retrieved %s", path)
	return path, nil
}

// removeStale deletes every file belonging to stem, partial downloads included.
func (r *Retriever) removeStale(stem string) error {
	entries, err := filesystem.API().ReadDir(r.dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !belongsTo(e.Name(), stem) {
			continue
		}

		log.Debugf("removing stale %s", e.Name())
		if err := filesystem.API().Remove(filepath.Join(r.dir, e.Name())); err != nil {
			return err
		}
	}

	return nil
}

// find locates the finished file for stem. Should the tool leave several,
// an mp4 is preferred, then the first by name.
func (r *Retriever) find(stem string) (string, error) {
	entries, err := filesystem.API().ReadDir(r.dir)
	if err != nil {
		return "", err
	}

	var found []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || e.Size() == 0 || isPartial(name) || util.FileStem(name) != stem {
			continue
		}
		found = append(found, name)
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no file named %s.* was produced", stem)
	case 1:
		return filepath.Join(r.dir, found[0]), nil
	}

	log.Warnf("several files for %s: %s", stem, strings.Join(found, ", "))
	sort.SliceStable(found, func(i, j int) bool {
		iMP4, jMP4 := filepath.Ext(found[i]) == ".mp4", filepath.Ext(found[j]) == ".mp4"
		if iMP4 != jMP4 {
			return iMP4
		}
		return found[i] < found[j]
	})

	return filepath.Join(r.dir, found[0]), nil
}

func belongsTo(name, stem string) bool {
	return name == stem || strings.HasPrefix(name, stem+".")
}

func isPartial(name string) bool {
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
