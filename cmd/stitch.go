package cmd

import (
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/hoopreel/hoopreel/provider"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/stats"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(stitchCmd)

	stitchCmd.Flags().StringP("output", "o", "highlight_reel", "Output file name or path")
	stitchCmd.Flags().IntP("workers", "w", 0, "Concurrent downloads for url inputs")
	stitchCmd.Flags().Bool("open", false, "Open the reel when it is done")
	stitchCmd.Flags().Bool("no-resolve", false, "Download url inputs as given, without looking for embedded media")
}

var stitchCmd = &cobra.Command{
	Use:   "stitch <file|url>...",
	Short: "Join local clips and urls into one video",
	Long: `Join the given clips in order. Urls are downloaded first; pages from a
configured source are searched for their embedded video.`,
	Example: `  hoopreel stitch a.mp4 b.mp4 -o dunks
  hoopreel stitch https://www.nba.com/watch/video/xyz clip.mp4`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		var src source.Source
		if !lo.Must(cmd.Flags().GetBool("no-resolve")) && lo.SomeBy(args, pipeline.IsRemote) {
			loaded, err := provider.Load(viper.GetStringSlice(key.DefaultSources))
			handleErr(err)
			src = loaded
		}

		options := pipeline.ConfigOptions(src, mo.None[stats.Provider]())
		if workers := lo.Must(cmd.Flags().GetInt("workers")); workers > 0 {
			options.Workers = workers
		}

		onState, stop := progress(lo.Must(cmd.Flags().GetString("output")))
		options.OnState = onState

		result, err := pipeline.New(options).Stitch(cmd.Context(), args, lo.Must(cmd.Flags().GetString("output")))
		stop()
		handleErr(err)

		printResult(cmd, result)
		openReel(cmd, result.Output)
	},
}
