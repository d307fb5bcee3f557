package discovery

import (
	"context"
	"sync"

	"github.com/hoopreel/hoopreel/source"
)

// searchConcurrently runs term queries on a bounded set of workers.
// Terms are started in order and no term is started once the completed
// queries already produced maxResults distinct links. Results are merged into
// set in term order after every started query returned.
func (d *Discoverer) searchConcurrently(ctx context.Context, subject string, terms []string, maxResults int, set *source.LinkSet) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		completed = source.NewLinkSet()
		results   = make([][]*source.Link, len(terms))
		slots     = make(chan struct{}, d.options.Concurrency)
	)

	enough := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return completed.Len() >= maxResults
	}

dispatch:
	for i, term := range terms {
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			break dispatch
		}

		if enough() {
			<-slots
			break
		}

		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			defer func() { <-slots }()

			links := d.search(ctx, source.Query{Subject: subject, Term: term})

			mu.Lock()
			results[i] = links
			completed.AddAll(links)
			mu.Unlock()
		}(i, term)
	}

	wg.Wait()

	for _, links := range results {
		set.AddAll(links)
	}
}
