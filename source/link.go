package source

// Link is a discovered highlight reference. URL is its identity.
type Link struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// String returns the title or URL for display.
func (l *Link) String() string {
	if l.Title != "" {
		return l.Title
	}
	return l.URL
}

// LinkSet is an insertion-ordered set of links keyed by URL.
// The first link added for a URL is kept; later ones are ignored.
type LinkSet struct {
	links []*Link
	seen  map[string]struct{}
}

// NewLinkSet returns an empty set.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add inserts link unless a link with the same URL is already present.
// It reports whether the link was accepted. Links with an empty URL are rejected.
func (s *LinkSet) Add(link *Link) bool {
	if link == nil || link.URL == "" {
		return false
	}

	if _, ok := s.seen[link.URL]; ok {
		return false
	}

	s.seen[link.URL] = struct{}{}
	s.links = append(s.links, link)
	return true
}

// AddAll inserts links in order and returns how many were accepted.
func (s *LinkSet) AddAll(links []*Link) (accepted int) {
	for _, link := range links {
		if s.Add(link) {
			accepted++
		}
	}
	return
}

// Has reports whether a link with url was added.
func (s *LinkSet) Has(url string) bool {
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of distinct links.
func (s *LinkSet) Len() int {
	return len(s.links)
}

// Links returns the accepted links in insertion order, at most limit of them.
// A non-positive limit returns all links.
func (s *LinkSet) Links(limit int) []*Link {
	n := len(s.links)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*Link, n)
	copy(out, s.links[:n])
	return out
}
