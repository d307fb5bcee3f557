// Package discovery turns a subject into an ordered, deduplicated list of highlight links.
package discovery

import (
	"context"
	"fmt"

	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/stats"
	"github.com/samber/mo"
)

// Options tune a Discoverer.
type Options struct {
	// RecentGames is how many games are requested from the statistics provider.
	RecentGames int

	// Concurrency is the number of search queries in flight. Values below 2 keep discovery sequential.
	Concurrency int
}

// Discoverer queries a link source with terms derived from recent games.
type Discoverer struct {
	source  source.Source
	stats   mo.Option[stats.Provider]
	options Options
}

// New returns a Discoverer. Without a statistics provider only the direct
// highlights query is issued.
func New(src source.Source, statsProvider mo.Option[stats.Provider], options Options) *Discoverer {
	if options.RecentGames <= 0 {
		options.RecentGames = 5
	}

	if options.Concurrency < 1 {
		options.Concurrency = 1
	}

	return &Discoverer{
		source:  src,
		stats:   statsProvider,
		options: options,
	}
}

// DirectTerm is the query issued when game-derived terms did not yield enough links.
func DirectTerm(subject string) string {
	return fmt.Sprintf("%s highlights", subject)
}

// Terms returns the game-derived search terms for subject, most recent game first.
// It returns nil when no provider is configured or the provider fails.
func (d *Discoverer) Terms(ctx context.Context, subject string) []string {
	provider, ok := d.stats.Get()
	if !ok {
		log.Info("no statistics provider, using the direct query only")
		return nil
	}

	games, err := provider.RecentGames(ctx, subject, d.options.RecentGames)
	if err != nil {
		log.Warnf("recent games for %q: %s", subject, err)
		return nil
	}

	log.Infof("found %d recent games for %q", len(games), subject)

	var terms []string
	for _, game := range games {
		terms = append(terms, game.Terms(subject)...)
	}

	return terms
}

// Discover returns at most maxResults links for subject in first-seen order.
//
// Terms are queried in order and no query is started once maxResults distinct
// links were collected. If the game terms fall short a direct highlights query
// is issued last. A failing query is logged and skipped. The error is non-nil
// only when ctx ends, in which case the links collected so far are returned.
func (d *Discoverer) Discover(ctx context.Context, subject string, maxResults int) ([]*source.Link, error) {
	set := source.NewLinkSet()
	if maxResults <= 0 {
		return set.Links(0), nil
	}

	terms := d.Terms(ctx, subject)

	if d.options.Concurrency > 1 {
		d.searchConcurrently(ctx, subject, terms, maxResults, set)
	} else {
		for _, term := range terms {
			if set.Len() >= maxResults || ctx.Err() != nil {
				break
			}
			set.AddAll(d.search(ctx, source.Query{Subject: subject, Term: term}))
		}
	}

	if set.Len() < maxResults && ctx.Err() == nil {
		set.AddAll(d.search(ctx, source.Query{Subject: subject, Term: DirectTerm(subject)}))
	}

	links := set.Links(maxResults)
	log.Infof("discovered %d links for %q", len(links), subject)
	return links, ctx.Err()
}

func (d *Discoverer) search(ctx context.Context, q source.Query) []*source.Link {
	links, err := d.source.Search(ctx, q)
	if err != nil {
		log.Warnf("%s: search %q: %s", d.source.Name(), q, err)
		return nil
	}

	log.Debugf("%s: %d links for %q", d.source.Name(), len(links), q)
	return links
}
