package source

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// MediaFile is a retrieved clip stored on the local filesystem.
type MediaFile struct {
	SourceURL string `json:"source_url"`
	Path      string `json:"path"`
	Ordinal   int    `json:"ordinal"`
}

// Stem returns the deterministic file stem used for the clip at ordinal.
func Stem(ordinal int) string {
	return fmt.Sprintf("highlight_%03d", ordinal)
}

var mediaExtensions = map[string]struct{}{
	".mp4":  {},
	".m4v":  {},
	".mov":  {},
	".webm": {},
	".mkv":  {},
	".ts":   {},
	".m3u8": {},
	".mpd":  {},
}

// IsDirectMedia reports whether rawURL points at video bytes or a stream
// manifest, judging by the extension of its path.
func IsDirectMedia(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	_, ok := mediaExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}
