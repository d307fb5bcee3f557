package cmd

import (
	"os"
	"strings"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/config"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/where"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set", "s", false, "List only variables present in the environment")
	envCmd.Flags().BoolP("unset", "u", false, "List only variables absent from the environment")
	envCmd.MarkFlagsMutuallyExclusive("set", "unset")
}

type envVar struct {
	Name string
	Key  string
}

// envVars lists every variable that overrides a setting, plus the config
// directory override.
func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		f := config.Default[k]
		return envVar{Name: f.Env(), Key: k}
	})
	vars = append(vars, envVar{Name: where.EnvConfigPath, Key: "config directory"})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.Name, b.Name)
	})
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List environment variables that override settings",
	Example: `  HOOPREEL_STITCH_CRF=18 hoopreel run "Stephen Curry"
  hoopreel env --set`,
	Run: func(cmd *cobra.Command, args []string) {
		onlySet := lo.Must(cmd.Flags().GetBool("set"))
		onlyUnset := lo.Must(cmd.Flags().GetBool("unset"))

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Variable", "Overrides", "Value"})

		for _, v := range envVars() {
			value, present := os.LookupEnv(v.Name)
			if (onlySet && !present) || (onlyUnset && present) {
				continue
			}

			shown := style.Faint("unset")
			if present {
				shown = style.Fg(color.Green)(value)
			}
			t.AppendRow(table.Row{style.Fg(color.Purple)(v.Name), v.Key, shown})
		}
		t.Render()
	},
}
