package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/config"
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/style"
	"github.com/jedib0t/go-pretty/v6/table"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Print fields as JSON")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
	Long: `Inspect and change settings stored in the config file.
Values are checked before they are written, e.g. stitch.crf must lie in 0..51
and retrieval.workers must be at least 1.`,
}

// knownKey exits with a suggestion when k is not a registered key.
func knownKey(k string) {
	if _, ok := config.Default[k]; ok {
		return
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})

	handleErr(fmt.Errorf("%w %s, did you mean %s?", config.ErrUnknownKey, style.Fg(color.Red)(k), style.Fg(color.Yellow)(closest)))
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Without(lo.Keys(config.Default), args...), cobra.ShellCompDirectiveNoFileComp
}

func sortedFields(keys []string) []config.Field {
	if len(keys) == 0 {
		keys = lo.Keys(config.Default)
	}
	slices.Sort(keys)

	return lo.Map(keys, func(k string, _ int) config.Field {
		knownKey(k)
		return config.Default[k]
	})
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key]...",
	Short:             "Describe settings",
	Long:              "Without keys, print a table of every setting. With keys, print their description, environment variable and type.",
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields := sortedFields(args)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(lo.ToSlicePtr(fields)))
			return
		}

		if len(args) > 0 {
			cmd.Println(strings.Join(lo.Map(fields, func(f config.Field, _ int) string {
				return f.Pretty()
			}), "\n\n"))
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Key", "Value", "Default"})

		section := ""
		for _, f := range fields {
			if prefix, _, _ := strings.Cut(f.Key, "."); prefix != section {
				if section != "" {
					t.AppendSeparator()
				}
				section = prefix
			}

			value := fmt.Sprint(viper.Get(f.Key))
			if value != fmt.Sprint(f.Value) {
				value = style.Fg(color.Yellow)(value)
			}
			t.AppendRow(table.Row{f.Key, value, style.Faint(fmt.Sprint(f.Value))})
		}
		t.Render()
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		knownKey(args[0])
		cmd.Println(viper.Get(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>...",
	Short: "Change a setting",
	Long:  "Change a setting. List settings such as sources.default take several values or one comma separated value.",
	Example: `  hoopreel config set retrieval.workers 4
  hoopreel config set stitch.crf 20
  hoopreel config set sources.default nba mysource`,
	Args: cobra.MinimumNArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return completeKeys(cmd, args, toComplete)
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		k := args[0]
		knownKey(k)

		v, err := config.Set(k, args[1:])
		handleErr(err)

		cmd.Printf("%s %s = %s\n", icon.Render(icon.Success), style.Fg(color.Purple)(k), style.Fg(color.Yellow)(fmt.Sprint(v)))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]...",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			handleErr(errors.New("give keys to reset or --all"))
		}

		lo.ForEach(args, func(k string, _ int) { knownKey(k) })
		handleErr(config.Reset(args...))

		if all {
			cmd.Printf("%s reset every setting\n", icon.Render(icon.Success))
			return
		}

		for _, f := range sortedFields(args) {
			cmd.Printf("%s %s = %s\n", icon.Render(icon.Success), style.Fg(color.Purple)(f.Key), style.Fg(color.Yellow)(fmt.Sprint(f.Value)))
		}
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the effective settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.File()
		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Printf("%s wrote %s\n", icon.Render(icon.Success), path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.File()
		handleErr(filesystem.API().Remove(path))
		cmd.Printf("%s deleted %s\n", icon.Render(icon.Success), path)
	},
}
