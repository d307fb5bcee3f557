package version

import (
	"context"
	"fmt"
	"io"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/network"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/util"
	"github.com/spf13/viper"
)

// Notify prints a notice to w when a release newer than the running build exists.
func Notify(ctx context.Context, w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, network.Client, constant.LatestReleaseAPI)
	erase()

	if err != nil {
		return
	}

	if cmp, err := Compare(latest, constant.Version); err != nil || cmp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Orange)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.Repository+"/releases/tag/v"+latest),
	)
}
