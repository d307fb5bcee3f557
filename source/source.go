// Package source defines the domain models and interfaces for highlight discovery and retrieval.
package source

import "context"

// Query is one search issued on behalf of a subject. Term is what the
// provider is asked; Subject is the athlete or team the reel is about and
// decides whether a result is relevant.
type Query struct {
	Subject string
	Term    string
}

// SubjectQuery searches for subject itself.
func SubjectQuery(subject string) Query {
	return Query{Subject: subject, Term: subject}
}

func (q Query) String() string {
	return q.Term
}

// Source defines the capabilities of a highlight link provider.
type Source interface {
	// Name returns the human-readable name of the provider.
	Name() string

	// ID returns the unique identifier of the source.
	ID() string

	// Search queries the provider with q.Term and returns candidate links
	// in the order the provider ranked them.
	Search(ctx context.Context, q Query) ([]*Link, error)

	// ResolveMedia inspects a page and returns the direct media references it embeds.
	ResolveMedia(ctx context.Context, page string) ([]string, error)

	// IsPage reports whether url refers to a page embedding media rather than the media itself.
	IsPage(url string) bool
}
