// Package nba implements the built-in link source backed by the NBA.com website.
package nba

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/network"
	"github.com/hoopreel/hoopreel/source"
)

const (
	ID      = "nba"
	Name    = "NBA.com"
	BaseURL = "https://www.nba.com"
)

// Fetcher returns the body of the page at url.
type Fetcher func(ctx context.Context, url string) (string, error)

// FetchTLS fetches pages with a browser TLS fingerprint.
func FetchTLS(ctx context.Context, u string) (string, error) {
	resp, err := network.DoTLS(ctx, network.Request{URL: u})
	if err != nil {
		return "", err
	}

	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", u, resp.Status)
	}

	return resp.Body, nil
}

// Source scrapes NBA.com search and video pages.
type Source struct {
	base  *url.URL
	fetch Fetcher
}

// New returns a Source for base using fetch. A nil fetch uses FetchTLS.
func New(base string, fetch Fetcher) (*Source, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	if fetch == nil {
		fetch = FetchTLS
	}

	return &Source{base: u, fetch: fetch}, nil
}

func (s *Source) Name() string { return Name }
func (s *Source) ID() string   { return ID }

var (
	linkKeywords = []string{"video", "highlight", "play", "watch"}
	embedHosts   = []string{"nba.com", "youtube", "vimeo"}
)

// Search scrapes the NBA.com search page for q.Term.
//
// Anchors qualify when their target looks like a video page and their text
// mentions a highlight or the full subject name. Embedded players hosted on
// known video sites are returned too, after the anchors.
func (s *Source) Search(ctx context.Context, q source.Query) ([]*source.Link, error) {
	searchURL := s.base.ResolveReference(&url.URL{
		Path:     "/search",
		RawQuery: url.Values{"q": {q.Term}}.Encode(),
	})

	doc, err := s.document(ctx, searchURL.String())
	if err != nil {
		return nil, err
	}

	subject := normalizeName(q.Subject)
	var links []*source.Link

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !containsAny(strings.ToLower(href), linkKeywords) {
			return
		}

		text := strings.Join(strings.Fields(a.Text()), " ")
		if !relevant(text, subject) {
			return
		}

		if resolved, ok := s.resolve(searchURL, href); ok {
			links = append(links, &source.Link{URL: resolved, Title: text})
		}
	})

	doc.Find("video, iframe").Each(func(_ int, player *goquery.Selection) {
		src := player.AttrOr("src", "")
		if src == "" {
			src = player.AttrOr("data-src", "")
		}

		if src == "" || !containsAny(src, embedHosts) {
			return
		}

		if resolved, ok := s.resolve(searchURL, src); ok {
			links = append(links, &source.Link{URL: resolved, Title: q.Term + " highlight"})
		}
	})

	log.Infof("nba: %d links for %q", len(links), q.Term)
	return links, nil
}

// ResolveMedia extracts media references embedded in a video page, in document
// order of video sources, then iframes, then data-video-url attributes.
func (s *Source) ResolveMedia(ctx context.Context, page string) ([]string, error) {
	pageURL, err := url.Parse(page)
	if err != nil {
		return nil, err
	}

	doc, err := s.document(ctx, page)
	if err != nil {
		return nil, err
	}

	var refs []string
	add := func(raw string) {
		if resolved, ok := s.resolve(pageURL, raw); ok {
			refs = append(refs, resolved)
		}
	}

	doc.Find("video source[src], video[src]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("src", ""))
	})

	doc.Find("iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("src", ""))
	})

	doc.Find("[data-video-url]").Each(func(_ int, sel *goquery.Selection) {
		add(sel.AttrOr("data-video-url", ""))
	})

	return refs, nil
}

// IsPage reports whether u is an NBA.com page that needs media resolution.
func (s *Source) IsPage(u string) bool {
	if source.IsDirectMedia(u) {
		return false
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	return host == s.base.Hostname() || strings.HasSuffix(host, ".nba.com") || host == "nba.com"
}

func (s *Source) document(ctx context.Context, u string) (*goquery.Document, error) {
	body, err := s.fetch(ctx, u)
	if err != nil {
		log.Warnf("nba: %s", err)
		return nil, err
	}

	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

func (s *Source) resolve(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(strings.ToLower(ref), "javascript:") {
		return "", false
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	return resolved.String(), true
}

// normalizeName lowercases name, drops periods and collapses whitespace,
// so "P.J.  Tucker" and "PJ Tucker" compare equal.
func normalizeName(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), ".", "")
	return strings.Join(strings.Fields(name), " ")
}

// relevant reports whether anchor text is about a highlight or names subject in full.
func relevant(text, subject string) bool {
	text = normalizeName(text)
	if strings.Contains(text, "highlight") {
		return true
	}

	return subject != "" && strings.Contains(text, subject)
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
