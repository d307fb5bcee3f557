package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/source"
	"github.com/samber/lo"
)

// Chain queries several sources as one. Results keep source order.
type Chain struct {
	sources []source.Source
}

// NewChain returns a Chain over sources.
func NewChain(sources ...source.Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) Name() string {
	return strings.Join(lo.Map(c.sources, func(s source.Source, _ int) string {
		return s.Name()
	}), " + ")
}

func (c *Chain) ID() string {
	return strings.Join(lo.Map(c.sources, func(s source.Source, _ int) string {
		return s.ID()
	}), "+")
}

// Search concatenates the results of every source. It fails only when every source failed.
func (c *Chain) Search(ctx context.Context, q source.Query) ([]*source.Link, error) {
	var (
		links []*source.Link
		errs  []error
	)

	for _, s := range c.sources {
		found, err := s.Search(ctx, q)
		if err != nil {
			log.Warnf("%s: search %q: %s", s.Name(), q, err)
			errs = append(errs, err)
			continue
		}

		links = append(links, found...)
	}

	if len(errs) == len(c.sources) {
		return nil, errors.Join(errs...)
	}

	return links, nil
}

// ResolveMedia asks every source that treats page as a page, returning the first non-empty answer.
func (c *Chain) ResolveMedia(ctx context.Context, page string) ([]string, error) {
	var errs []error

	for _, s := range c.sources {
		if !s.IsPage(page) {
			continue
		}

		refs, err := s.ResolveMedia(ctx, page)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if len(refs) > 0 {
			return refs, nil
		}
	}

	return nil, errors.Join(errs...)
}

// IsPage reports whether any source treats u as a page.
func (c *Chain) IsPage(u string) bool {
	return lo.SomeBy(c.sources, func(s source.Source) bool {
		return s.IsPage(u)
	})
}
