// Package history keeps a record of finished pipeline runs.
package history

import (
	"sort"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/hoopreel/hoopreel/where"
)

// Limit is how many runs are kept. The oldest are dropped first.
const Limit = 100

var cacher = filesystem.Cache[map[string]*pipeline.Result](where.History(), 0)

// Get returns every recorded run, newest first.
func Get() ([]*pipeline.Result, error) {
	saved, err := load()
	if err != nil {
		return nil, err
	}

	return sorted(saved), nil
}

// Save records a finished run. Saving the same run again replaces it.
func Save(result *pipeline.Result) error {
	saved, err := load()
	if err != nil {
		return err
	}

	saved[result.RunID.String()] = result

	runs := sorted(saved)
	for _, old := range runs[min(len(runs), Limit):] {
		delete(saved, old.RunID.String())
	}

	return cacher.Set(saved)
}

// Remove deletes the run with the given id.
func Remove(runID string) error {
	saved, err := load()
	if err != nil {
		return err
	}

	delete(saved, runID)
	return cacher.Set(saved)
}

// Clear deletes every record.
func Clear() error {
	return cacher.Set(map[string]*pipeline.Result{})
}

func load() (map[string]*pipeline.Result, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}

	if expired || cached == nil {
		return make(map[string]*pipeline.Result), nil
	}

	return cached, nil
}

func sorted(saved map[string]*pipeline.Result) []*pipeline.Result {
	runs := make([]*pipeline.Result, 0, len(saved))
	for _, run := range saved {
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs
}
