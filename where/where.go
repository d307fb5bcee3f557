// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "HOOPREEL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the HOOPREEL_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Sources resolves the directory containing user-provided Lua link sources.
func Sources() string {
	return ensureDir(filepath.Join(Config(), "sources"))
}

// SourceOrigins resolves the registry of URLs that installed sources were fetched from.
func SourceOrigins() string {
	return filepath.Join(Config(), "sources.json")
}

// History resolves the run history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries resolves the subject suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Downloads resolves the root directory for retrieved clips.
// Each run writes into a per-subject subdirectory below it.
func Downloads() string {
	return ensureDir(resolve(viper.GetString(key.PathsDownloads), "downloads"))
}

// Output resolves the directory finished reels are written to.
func Output() string {
	return ensureDir(resolve(viper.GetString(key.PathsOutput), "output"))
}

// Temp resolves a volatile directory for transient artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}

func resolve(configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}

	if filepath.IsAbs(configured) {
		return configured
	}

	abs, err := filepath.Abs(configured)
	if err != nil {
		return configured
	}

	return abs
}

// Usage counts the regular files below dir and their total size.
// A missing dir is empty.
func Usage(dir string) (files int, size int64, err error) {
	if exists, err := filesystem.API().DirExists(dir); err != nil || !exists {
		return 0, 0, err
	}

	err = filesystem.API().Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Mode().IsRegular() {
			files++
			size += info.Size()
		}
		return nil
	})

	return files, size, err
}
