package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/filesystem"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/network"
	"github.com/hoopreel/hoopreel/provider"
	"github.com/hoopreel/hoopreel/provider/custom"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/style"
	"github.com/hoopreel/hoopreel/util"
	"github.com/hoopreel/hoopreel/where"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage built-in and custom link sources",
}

func completionCustomSources(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(provider.Customs(), func(p *provider.Provider, _ int) string {
		return p.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print names only")
	sourcesListCmd.Flags().BoolP("custom", "c", false, "Show only custom Lua sources")
	sourcesListCmd.Flags().BoolP("builtin", "b", false, "Show only built-in sources")

	sourcesListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available link sources",
	Run: func(cmd *cobra.Command, args []string) {
		var providers []*provider.Provider
		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			providers = provider.Builtins()
		case lo.Must(cmd.Flags().GetBool("custom")):
			providers = provider.Customs()
		default:
			providers = provider.All()
		}

		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, p := range providers {
				cmd.Println(p.Name)
			}
			return
		}

		defaults := viper.GetStringSlice(key.DefaultSources)

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Name", "Kind", "Default", "Path"})
		for _, p := range providers {
			kind := "builtin"
			if p.IsCustom {
				kind = "custom"
			}

			isDefault := lo.ContainsBy(defaults, func(name string) bool {
				return strings.EqualFold(name, p.Name)
			})

			t.AppendRow(table.Row{p.Name, kind, lo.Ternary(isDefault, icon.Get(icon.Success), ""), p.Path})
		}
		t.Render()
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesRemoveCmd)
}

var sourcesRemoveCmd = &cobra.Command{
	Use:               "remove <name>...",
	Short:             "Uninstall custom Lua sources",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionCustomSources,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			handleErr(provider.Remove(name))
			cmd.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesInstallCmd)
}

var sourcesInstallCmd = &cobra.Command{
	Use:   "install <url>",
	Short: "Install a Lua source from a url",
	Long: `Download a Lua source into the sources directory. The url is remembered
so that "sources update" can refresh the script later.`,
	Example: "  hoopreel sources install https://example.com/sources/youtube.lua",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Download), args[0]))
		p, err := provider.Install(cmd.Context(), network.Client, args[0])
		erase()
		handleErr(err)

		cmd.Printf("%s installed %s to %s\n", icon.Get(icon.Link), style.Fg(color.Yellow)(p.Name), p.Path)
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesUpdateCmd)
}

var sourcesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh installed Lua sources from where they were downloaded",
	Run: func(cmd *cobra.Command, args []string) {
		erase := util.PrintErasable(fmt.Sprintf("%s Updating sources...", icon.Get(icon.Progress)))
		updated, err := provider.Update(cmd.Context(), network.Client)
		erase()
		handleErr(err)

		if len(updated) == 0 {
			cmd.Printf("%s all sources are up to date\n", icon.Get(icon.Success))
			return
		}

		for _, name := range updated {
			cmd.Printf("%s updated %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesTestCmd)
	sourcesTestCmd.Flags().BoolP("resolve", "r", false, "Also resolve the media of page links")
	sourcesTestCmd.Flags().StringP("subject", "s", "", "Subject used to judge relevance. Defaults to the term")
}

var sourcesTestCmd = &cobra.Command{
	Use:   "test <source|file.lua> <term>",
	Short: "Run a search against a single source",
	Long: `Load a source by name or a Lua file by path and print the links it returns for term.
Useful while writing a custom source.`,
	Example: `  hoopreel sources test nba "Stephen Curry highlights"
  hoopreel sources test ./mysource.lua "Celtics vs. Knicks"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := loadSource(args[0])
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Searching %s...", icon.Get(icon.Search), src.Name()))
		q := source.SubjectQuery(args[1])
		if subject := lo.Must(cmd.Flags().GetString("subject")); subject != "" {
			q.Subject = subject
		}

		links, err := src.Search(cmd.Context(), q)
		erase()
		handleErr(err)

		resolve := lo.Must(cmd.Flags().GetBool("resolve"))

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"#", "Title", "URL", "Media"})
		for i, link := range links {
			media := ""
			if resolve && src.IsPage(link.URL) {
				refs, err := src.ResolveMedia(cmd.Context(), link.URL)
				if err == nil && len(refs) > 0 {
					media = refs[0]
				}
			}

			t.AppendRow(table.Row{i, link.Title, link.URL, media})
		}
		t.AppendFooter(table.Row{"", util.Quantify(len(links), "link", "links")})
		t.Render()
	},
}

// loadSource accepts a provider name or the path of a Lua script.
func loadSource(nameOrPath string) (source.Source, error) {
	if filepath.Ext(nameOrPath) == ".lua" {
		return custom.LoadSource(nameOrPath)
	}
	return provider.Load([]string{nameOrPath})
}

func init() {
	sourcesCmd.AddCommand(sourcesGenCmd)

	sourcesGenCmd.Flags().StringP("name", "n", "", "Name of the new source")
	sourcesGenCmd.Flags().StringP("url", "u", "", "Base url of the site the source scrapes")

	lo.Must0(sourcesGenCmd.MarkFlagRequired("name"))
	lo.Must0(sourcesGenCmd.MarkFlagRequired("url"))
}

var sourcesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua source",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name               string
			URL                string
			SearchHighlightsFn string
			ResolveMediaFn     string
			Author             string
		}{
			Name:               lo.Must(cmd.Flags().GetString("name")),
			URL:                lo.Must(cmd.Flags().GetString("url")),
			SearchHighlightsFn: constant.SearchHighlightsFn,
			ResolveMediaFn:     constant.ResolveMediaFn,
			Author:             author,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("source").Funcs(funcMap).Parse(constant.SourceTemplate)
		handleErr(err)

		target := filepath.Join(where.Sources(), util.SanitizeFilename(s.Name)+".lua")
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}
