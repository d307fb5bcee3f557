package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/history"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/open"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/hoopreel/hoopreel/provider"
	"github.com/hoopreel/hoopreel/query"
	"github.com/hoopreel/hoopreel/stats"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func parseCount(args []string) (int, error) {
	if len(args) < 2 {
		return viper.GetInt(key.DiscoveryMaxResults), nil
	}

	count, err := strconv.Atoi(args[1])
	if err != nil || count < 1 {
		return 0, fmt.Errorf("invalid count %q: must be a positive number", args[1])
	}

	return count, nil
}

var stateIcons = map[pipeline.State]icon.Icon{
	pipeline.Discovering: icon.Basketball,
	pipeline.Retrieving:  icon.Download,
	pipeline.Stitching:   icon.Film,
}

// progress prints an erasable line per running state.
func progress(subject string) (onState func(pipeline.State), stop func()) {
	erase := func() {}

	onState = func(state pipeline.State) {
		erase()
		if state.Terminal() {
			erase = func() {}
			return
		}

		erase = util.PrintErasable(fmt.Sprintf(
			"%s %s %s...",
			icon.Get(stateIcons[state]),
			util.Capitalize(state.String()),
			style.Fg(color.Yellow)(subject),
		))
	}

	return onState, func() { erase() }
}

func runHighlights(cmd *cobra.Command, subject string, count int) {
	asJSON := lo.Must(cmd.Flags().GetBool("json"))
	CheckDependencies()

	src, err := provider.Load(viper.GetStringSlice(key.DefaultSources))
	handleErr(err)

	statsProvider := mo.None[stats.Provider]()
	if !lo.Must(cmd.Flags().GetBool("no-stats")) {
		statsProvider = stats.FromConfig()
	}

	options := pipeline.ConfigOptions(src, statsProvider)
	if !asJSON {
		onState, stop := progress(subject)
		defer stop()
		options.OnState = onState
	}

	result, runErr := pipeline.New(options).Run(cmd.Context(), subject, count)
	record(subject, result)

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(result))
		if runErr != nil {
			log.Error(runErr)
			os.Exit(1)
		}
		return
	}

	if errors.Is(runErr, pipeline.ErrNoHighlightsFound) {
		suggest(cmd, subject)
	}

	handleErr(runErr)
	printResult(cmd, result)
	openReel(cmd, result.Output)
}

// openReel starts a player for path when --open is set.
func openReel(cmd *cobra.Command, path string) {
	if !lo.Must(cmd.Flags().GetBool("open")) {
		return
	}

	if err := open.Start(path, viper.GetString(key.CliOpenWith)); err != nil {
		log.Warn(err)
		cmd.Printf("%s could not open %s: %s\n", icon.Render(icon.Warn), path, err)
	}
}

// suggest points at a previously successful subject close to the one that found nothing.
func suggest(cmd *cobra.Command, subject string) {
	match, ok := query.Suggest(subject).Get()
	if ok && match != query.Normalize(subject) {
		cmd.Printf("%s did you mean %s?\n", style.Fg(color.Yellow)(icon.Get(icon.Search)), style.Bold(match))
	}
}

func record(subject string, result *pipeline.Result) {
	if result.State == pipeline.Done {
		if err := query.Remember(subject, 1); err != nil {
			log.Warn(err)
		}
	}

	if !viper.GetBool(key.HistorySave) {
		return
	}

	if err := history.Save(result); err != nil {
		log.Warn(err)
	}
}

func printResult(cmd *cobra.Command, result *pipeline.Result) {
	size := ""
	if info, err := filesystem.API().Stat(result.Output); err == nil {
		size = " " + style.Faint("("+humanize.Bytes(uint64(info.Size()))+")")
	}

	cmd.Printf(
		"%s %s%s\n",
		icon.Render(icon.Success),
		result.Output,
		size,
	)

	details := fmt.Sprintf(
		"%s of %d, %s, took %s",
		util.Quantify(result.Retrieved, "clip", "clips"),
		result.Discovered,
		result.Phase,
		result.Duration().Round(time.Second),
	)
	if result.Failed > 0 {
		details += fmt.Sprintf(", %d failed", result.Failed)
	}

	cmd.Println(style.Faint("  " + details))
}
