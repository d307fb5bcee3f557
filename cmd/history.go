package cmd

import (
	"encoding/json"

	"github.com/dustin/go-humanize"
	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/history"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/hoopreel/hoopreel/style"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Print the runs as JSON")
	historyCmd.Flags().IntP("limit", "n", 20, "Show at most this many runs")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Run: func(cmd *cobra.Command, args []string) {
		runs, err := history.Get()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(runs) > limit {
			runs = runs[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(runs))
			return
		}

		if len(runs) == 0 {
			cmd.Println(style.Faint("no runs yet"))
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"When", "Subject", "State", "Clips", "Result"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Clips", Align: text.AlignRight},
			{Name: "Result", WidthMax: 60},
		})

		for _, run := range runs {
			outcome := run.Output
			if run.State == pipeline.Failed {
				outcome = run.Reason
			}

			t.AppendRow(table.Row{
				humanize.Time(run.StartedAt),
				run.Subject,
				stateLabel(run.State),
				humanize.Comma(int64(run.Retrieved)),
				outcome,
			})
		}
		t.Render()
	},
}

func stateLabel(state pipeline.State) string {
	switch state {
	case pipeline.Done:
		return style.Fg(color.Green)(icon.Get(icon.Success) + " " + state.String())
	case pipeline.Failed:
		return style.Fg(color.Red)(icon.Get(icon.Fail) + " " + state.String())
	default:
		return state.String()
	}
}
