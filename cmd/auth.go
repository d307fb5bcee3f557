package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hoopreel/hoopreel/auth"
	"github.com/hoopreel/hoopreel/icon"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetKeyCmd, authRemoveKeyCmd, authStatusCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the statistics API key",
	Long: `Manage the balldontlie API key used to look up recent games.
The key is kept in the system keyring. The stats.api_key setting takes precedence.`,
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the API key in the system keyring",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string
		if len(args) == 1 {
			apiKey = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{
				Message: "balldontlie API key",
			}, &apiKey, survey.WithValidator(survey.Required)))
		}

		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			handleErr(errors.New("empty API key"))
		}

		handleErr(auth.SetKey(apiKey))
		cmd.Printf("%s API key saved\n", icon.Render(icon.Success))
	},
}

var authRemoveKeyCmd = &cobra.Command{
	Use:   "remove-key",
	Short: "Delete the API key from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteKey())
		cmd.Printf("%s API key removed\n", icon.Render(icon.Success))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API key is available",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := auth.ResolveKey(); err != nil {
			cmd.Printf("%s %s\n", icon.Render(icon.Warn), err)
			return
		}
		cmd.Printf("%s API key configured\n", icon.Render(icon.Success))
	},
}
