// Package query remembers the subjects reels were made for and suggests them
// for shell completion and misspelled subjects.
package query

import (
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type subjectRecord struct {
	Subject string `json:"subject"`
	Runs    int    `json:"runs"`
}

var subjects = filesystem.Cache[map[string]*subjectRecord](where.Queries(), 0)

// Remember counts runs more reels made for subject.
func Remember(subject string, runs int) error {
	subject = Normalize(subject)
	if subject == "" {
		return nil
	}

	saved, expired, err := subjects.Get()
	if err != nil || expired || saved == nil {
		saved = make(map[string]*subjectRecord)
	}

	record, ok := saved[subject]
	if !ok {
		record = &subjectRecord{Subject: subject}
		saved[subject] = record
	}
	record.Runs += runs

	return subjects.Set(saved)
}

// Suggest returns the most used remembered subject matching partial.
func Suggest(partial string) mo.Option[string] {
	return mo.TupleToOption(lo.First(SuggestMany(partial)))
}

// SuggestMany returns remembered subjects fuzzily matching partial, most used first.
// Ties are ordered by name so completion is stable.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}

	saved, expired, err := subjects.Get()
	if err != nil || expired {
		return nil
	}

	partial = Normalize(partial)
	matches := lo.Filter(lo.Values(saved), func(r *subjectRecord, _ int) bool {
		return fuzzy.Match(partial, r.Subject)
	})

	slices.SortFunc(matches, func(a, b *subjectRecord) int {
		if a.Runs != b.Runs {
			return b.Runs - a.Runs
		}
		if a.Subject < b.Subject {
			return -1
		}
		return 1
	})

	return lo.Map(matches, func(r *subjectRecord, _ int) string {
		return r.Subject
	})
}
