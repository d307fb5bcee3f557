package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/hoopreel/hoopreel/config"
	"github.com/hoopreel/hoopreel/ffmpeg"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/hoopreel/hoopreel/retrieve"
	"github.com/hoopreel/hoopreel/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dependency is an external executable the pipeline shells out to.
type dependency struct {
	name     string
	install  map[string]string
	lookPath func() (string, error)
}

func dependencies() []dependency {
	return []dependency{
		{
			name: "yt-dlp",
			install: map[string]string{
				"darwin":  "brew install yt-dlp",
				"linux":   "python3 -m pip install -U yt-dlp",
				"windows": "winget install yt-dlp",
			},
			lookPath: (&retrieve.YtDLP{Executable: viper.GetString(key.RetrievalExecutable)}).LookPath,
		},
		{
			name: "ffmpeg",
			install: map[string]string{
				"darwin":  "brew install ffmpeg",
				"linux":   "sudo apt install ffmpeg",
				"windows": "winget install ffmpeg",
			},
			lookPath: func() (string, error) {
				return ffmpeg.LookPath(viper.GetString(key.StitchExecutable))
			},
		},
	}
}

// CheckDependencies exits with install hints when an external tool is missing.
func CheckDependencies() {
	missing := false
	for _, dep := range dependencies() {
		if _, err := dep.lookPath(); err != nil {
			printMissingDependencyError(dep)
			missing = true
		}
	}

	if missing {
		os.Exit(1)
	}
}

func printMissingDependencyError(dep dependency) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep.name))

	suggestion := ""
	if installCmd, ok := dep.install[runtime.GOOS]; ok {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the external tools are installed and the configuration is valid",
	Run: func(cmd *cobra.Command, args []string) {
		ok := true
		for _, dep := range dependencies() {
			path, err := dep.lookPath()
			if err != nil {
				ok = false
				hint := dep.install[runtime.GOOS]
				cmd.Printf("%s %s %s\n", icon.Render(icon.Fail), dep.name, style.Faint(hint))
				continue
			}
			cmd.Printf("%s %s %s\n", icon.Render(icon.Success), dep.name, style.Faint(path))
		}

		if probeErr := pipeline.StitcherFromConfig().Probe(cmd.Context()); probeErr != nil && ok {
			handleErr(probeErr)
		}

		for _, err := range config.Check() {
			ok = false
			cmd.Printf("%s %s\n", icon.Render(icon.Warn), err)
		}

		if !ok {
			os.Exit(1)
		}
	},
}
