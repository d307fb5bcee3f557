// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.DefaultSources, []string{"nba"}, "Link sources to search for highlights, in priority order.\nType \"hoopreel sources list\" to show available sources")
	register(key.StatsEnable, true, "Use recent game statistics to build search terms")
	register(key.StatsAPIKey, "", "API key for the statistics provider.\nFalls back to the system keyring, see \"hoopreel auth set-key\"")
	register(key.StatsBaseURL, "https://api.balldontlie.io/v1", "Base URL of the statistics provider API")
	register(key.StatsSeason, 0, "Season to read game logs from (e.g. 2024 for 2024-25).\n0 selects the current season")
	register(key.DiscoveryMaxResults, 10, "Default number of highlights to collect")
	register(key.DiscoveryRecentGames, 5, "Number of recent games used to derive search terms")
	register(key.DiscoveryConcurrency, 1, "Number of search queries issued in parallel. 1 keeps discovery sequential")
	register(key.RetrievalExecutable, "yt-dlp", "Path or name of the media retrieval executable")
	register(key.RetrievalFormat, "best[ext=mp4]/best", "Format selector passed to the retrieval tool")
	register(key.RetrievalTimeout, 300, "Wall-clock limit for one retrieval, in seconds")
	register(key.RetrievalWorkers, 1, "Number of clips retrieved in parallel. 1 keeps retrieval sequential")
	register(key.StitchExecutable, "ffmpeg", "Path or name of the media processing executable")
	register(key.StitchTimeout, 1800, "Wall-clock limit for one stitch phase, in seconds")
	register(key.StitchVideoCodec, "libx264", "Video codec used when clips must be re-encoded")
	register(key.StitchAudioCodec, "aac", "Audio codec used when clips must be re-encoded")
	register(key.StitchPreset, "medium", "Encoder preset used when clips must be re-encoded")
	register(key.StitchCRF, 23, "Constant rate factor used when clips must be re-encoded")
	register(key.StitchAudioBitrate, "192k", "Audio bitrate used when clips must be re-encoded")
	register(key.PathsDownloads, "downloads", "Directory for retrieved clips. Relative paths resolve against the working directory")
	register(key.PathsOutput, "output", "Directory for finished reels. Relative paths resolve against the working directory")
	register(key.HistorySave, true, "Record every run in the history file")
	register(key.SearchShowQuerySuggestions, true, "Suggest previously used subjects in shell completion")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.CliOpenWith, "", "Player used by --open. Empty uses the system default")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
