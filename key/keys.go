// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Link Source Identifiers - these keys manage the selection of highlight link sources.
const (
	DefaultSources = "sources.default"
)

// Game Statistics - these keys govern the optional statistics provider used to derive search terms.
const (
	StatsEnable  = "stats.enable"
	StatsAPIKey  = "stats.api_key"
	StatsBaseURL = "stats.base_url"
	StatsSeason  = "stats.season"
)

// Discovery - these keys shape how highlight links are searched for and capped.
const (
	DiscoveryMaxResults  = "discovery.max_results"
	DiscoveryRecentGames = "discovery.recent_games"
	DiscoveryConcurrency = "discovery.concurrency"
)

// Retrieval - these keys configure the external media retrieval tool.
const (
	RetrievalExecutable = "retrieval.executable"
	RetrievalFormat     = "retrieval.format"
	RetrievalTimeout    = "retrieval.timeout"
	RetrievalWorkers    = "retrieval.workers"
)

// Stitching - these keys configure the external media processing tool and its re-encode targets.
const (
	StitchExecutable   = "stitch.executable"
	StitchTimeout      = "stitch.timeout"
	StitchVideoCodec   = "stitch.video_codec"
	StitchAudioCodec   = "stitch.audio_codec"
	StitchPreset       = "stitch.preset"
	StitchCRF          = "stitch.crf"
	StitchAudioBitrate = "stitch.audio_bitrate"
)

// Filesystem Layout - these keys override where artifacts are written.
const (
	PathsDownloads = "paths.downloads"
	PathsOutput    = "paths.output"
)

// History Tracking - these keys configure the persistence of past pipeline runs.
const (
	HistorySave = "history.save"
)

// Search Interaction - these keys define subject suggestions for shell completion.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	CliOpenWith     = "cli.open_with"
)
