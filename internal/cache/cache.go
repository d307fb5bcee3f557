// Package cache stores short-lived JSON responses of link sources on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/where"
	"github.com/samber/lo"
)

// TTL is how long an entry stays valid. Highlight search pages change daily.
const TTL = 12 * time.Hour

func dir() string {
	path := filepath.Join(where.Cache(), "responses")
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// GenerateKey derives a stable cache identifier from a query and the name of the source answering it.
func GenerateKey(query, source string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + source
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry for key into target. It reports false on a miss or an expired entry.
func Read(key string, target any) bool {
	path := filepath.Join(dir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data under key, replacing the previous entry atomically.
func Write(key string, data any) error {
	path := filepath.Join(dir(), key)
	tmp := path + ".tmp"

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(tmp, encoded, 0o644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmp, path)
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(dir())
}

// CollectGarbage removes expired entries and returns how many were deleted.
func CollectGarbage() (removed int) {
	_ = filesystem.API().Walk(dir(), func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > TTL {
			if filesystem.API().Remove(path) == nil {
				removed++
			}
		}
		return nil
	})

	if removed > 0 {
		log.Infof("removed %d expired cache entries", removed)
	}
	return
}
