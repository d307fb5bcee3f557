package scraper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/log"
)

// maxScriptSize bounds a downloaded script.
const maxScriptSize = 4 << 20

// Update downloads remoteURL and replaces localPath with it when the content differs.
// It reports whether the local file changed. The replacement is an atomic rename.
func Update(ctx context.Context, client *http.Client, remoteURL, localPath string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch %s: status %d", remoteURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize))
	if err != nil {
		return false, err
	}

	remote := sha256.Sum256(body)
	if local, err := filesystem.API().ReadFile(localPath); err == nil {
		if sum := sha256.Sum256(local); bytes.Equal(sum[:], remote[:]) {
			log.Infof("%s is up to date", localPath)
			return false, nil
		}
	}

	tmp := localPath + ".tmp"
	if err := filesystem.API().WriteFile(tmp, body, 0o644); err != nil {
		return false, err
	}

	if err := filesystem.API().Rename(tmp, localPath); err != nil {
		_ = filesystem.API().Remove(tmp)
		return false, err
	}

	Forget(localPath)
	log.Infof("updated %s from %s", localPath, remoteURL)
	return true, nil
}
