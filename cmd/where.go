package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/where"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	Name  string `json:"name"`
	Flag  string `json:"-"`
	Path  string `json:"path"`
	Files int    `json:"files"`
	Bytes int64  `json:"bytes"`

	resolve func() string
	// clips marks locations that grow with every run.
	clips bool
}

var locations = []*location{
	{Name: "Config", Flag: "config", resolve: where.Config},
	{Name: "Sources", Flag: "sources", resolve: where.Sources},
	{Name: "Downloads", Flag: "downloads", resolve: where.Downloads, clips: true},
	{Name: "Reels", Flag: "output", resolve: where.Output, clips: true},
	{Name: "Logs", Flag: "logs", resolve: where.Logs},
	{Name: "Cache", Flag: "cache", resolve: where.Cache},
	{Name: "Temp", Flag: "temp", resolve: where.Temp},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().Bool(l.Flag, false, "Print only the "+l.Name+" path")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l *location, _ int) string {
		return l.Flag
	})...)

	whereCmd.Flags().BoolP("usage", "u", false, "Count files and bytes in each location")
	whereCmd.Flags().BoolP("json", "j", false, "Print locations as JSON")
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where settings, clips and reels are stored",
	Long: `Show where settings, clips and reels are stored.
With --usage the downloaded clips and stitched reels are measured, which helps
deciding when to clear the downloads directory.`,
	Example: `  hoopreel where --output
  hoopreel where --usage`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.Flag)) {
				cmd.Println(l.resolve())
				return
			}
		}

		usage := lo.Must(cmd.Flags().GetBool("usage"))
		for _, l := range locations {
			l.Path = l.resolve()
			if usage {
				var err error
				l.Files, l.Bytes, err = where.Usage(l.Path)
				handleErr(err)
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(locations))
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleRounded)

		header := table.Row{"Location", "Flag", "Path"}
		if usage {
			header = append(header, "Files", "Size")
		}
		t.AppendHeader(header)

		for _, l := range locations {
			name := l.Name
			if l.clips {
				name = style.Fg(color.Purple)(name)
			}

			row := table.Row{name, style.Faint("--" + l.Flag), l.Path}
			if usage {
				row = append(row, fmt.Sprint(l.Files), humanize.Bytes(uint64(l.Bytes)))
			}
			t.AppendRow(row)
		}
		t.Render()
	},
}
