// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "hoopreel"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// Repository hosts the releases.
	Repository = "https://github.com/hoopreel/hoopreel"

	// LatestReleaseAPI returns the newest published release.
	LatestReleaseAPI = "https://api.github.com/repos/hoopreel/hoopreel/releases/latest"

	// UserAgent is the default HTTP User-Agent string used for network requests to external providers.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, populated through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
