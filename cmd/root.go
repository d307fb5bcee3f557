// Package cmd implements the hoopreel command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/log"
	"github.com/hoopreel/hoopreel/provider"
	"github.com/hoopreel/hoopreel/query"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/util"
	"github.com/hoopreel/hoopreel/version"
	"github.com/hoopreel/hoopreel/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant (plain, emoji, kaomoji, squares, nerd)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.Variants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringSliceP("source", "S", []string{}, "Link sources to search, in order")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.All(), func(p *provider.Provider, _ int) string {
			return p.Name
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.DefaultSources, rootCmd.PersistentFlags().Lookup("source")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record the run in the history")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().IntP("workers", "w", 0, "Concurrent downloads")
	lo.Must0(viper.BindPFlag(key.RetrievalWorkers, rootCmd.Flags().Lookup("workers")))

	rootCmd.Flags().Bool("no-stats", false, "Do not derive search terms from game statistics")
	rootCmd.Flags().BoolP("json", "j", false, "Print the run result as JSON")
	rootCmd.Flags().Bool("open", false, "Open the reel when it is done")
	rootCmd.Flags().StringP("output", "o", "", "Directory the reel is written to")
	lo.Must0(viper.BindPFlag(key.PathsOutput, rootCmd.Flags().Lookup("output")))

	rootCmd.SetOut(os.Stdout)

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.Context(), cmd.OutOrStdout())
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.App + " <subject> [count]",
	Short: "Build a highlight reel for an NBA player or team",
	Long: style.New().Bold(true).Foreground(color.Orange).Render(constant.App) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Find recent highlights, download them and stitch them into one video"),
	Example: `  hoopreel "Stephen Curry"
  hoopreel "Boston Celtics" 6 --workers 3
  hoopreel "Nikola Jokic" --no-stats --json`,
	Args: cobra.RangeArgs(0, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.SetContext(cmd.Context())
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		count, err := parseCount(args)
		handleErr(err)

		runHighlights(cmd, args[0], count)
	},
}

// Execute runs the command line. Interrupts cancel the running pipeline.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)

	msg := strings.Trim(err.Error(), " \n")
	if width, _, sizeErr := util.TerminalSize(); sizeErr == nil && width > 4 {
		msg = wordwrap.String(msg, width-4)
	}

	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), msg)
	os.Exit(1)
}
