// Package open hands a finished reel to the system's default video player.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/hoopreel/hoopreel/constant"
)

// Start opens path with app, or with the default handler when app is empty.
// It does not wait for the player to exit.
func Start(path, app string) error {
	cmd, err := Command(runtime.GOOS, path, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the launcher invocation for goos.
func Command(goos, path, app string) (*exec.Cmd, error) {
	if app != "" {
		switch goos {
		case constant.Windows:
			return exec.Command("cmd", "/C", "start", "", app, path), nil
		case constant.Darwin:
			return exec.Command("open", "-a", app, path), nil
		default:
			return exec.Command(app, path), nil
		}
	}

	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", path), nil
	case constant.Darwin:
		return exec.Command("open", path), nil
	case constant.Linux:
		return exec.Command("xdg-open", path), nil
	case constant.Android:
		return exec.Command("termux-open", path), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
