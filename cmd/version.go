package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build metadata as JSON")
	versionCmd.Flags().Bool("no-check", false, "Skip the check for a newer release")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Go       string `json:"go"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Go:       runtime.Version(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		info := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(info.Version)
			return
		case lo.Must(cmd.Flags().GetBool("json")):
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(info))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("no-check")) {
			defer version.Notify(cmd.Context(), cmd.OutOrStdout())
		}

		cmd.Println(style.Fg(color.Purple)("🏀 " + constant.App))
		cmd.Println()
		for _, row := range [][2]string{
			{"Version", info.Version},
			{"Revision", info.Revision},
			{"Built at", info.BuiltAt},
			{"Built by", info.BuiltBy},
			{"Platform", info.Platform},
			{"Go", info.Go},
		} {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-10s", row[0])), style.Bold(row[1]))
		}
	},
}
