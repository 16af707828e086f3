package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <admin-token>",
	Short: "Save an admin token for the configured endpoint",
	Long: `Verifies the admin token against the server at --endpoint and saves it, so that
'voxauth audit' commands can use it without passing --admin-token.`,
	Example: `  voxauth login --endpoint http://127.0.0.1:8000 eyJhbGciOi...`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := f.endpoint()
		if endpoint == "" {
			return fmt.Errorf("endpoint not configured (use --endpoint or set VOXAUTH_ENDPOINT)")
		}
		token := strings.TrimSpace(strings.TrimPrefix(args[0], "Bearer "))

		creds, err := f.LoadCredentials()
		if err != nil {
			return err
		}

		// check the token before saving it
		cli, err := f.GetClient()
		if err != nil {
			return err
		}
		cli = cli.Authenticated(token)
		if _, err := cli.ListAudits(cmd.Context(), 1); err != nil {
			return logError(err, "", "token was rejected by the server")
		}

		if err := creds.SetCredential(endpoint, token); err != nil {
			return err
		}
		if err := creds.Save(); err != nil {
			return err
		}
		log.Info().Msgf("%s Saved admin token for %s", greenCheck, bold(endpoint))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved admin token for the configured endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := f.endpoint()
		if endpoint == "" {
			return fmt.Errorf("endpoint not configured (use --endpoint or set VOXAUTH_ENDPOINT)")
		}
		creds, err := f.LoadCredentials()
		if err != nil {
			return err
		}
		removed, err := creds.RemoveCredential(endpoint)
		if err != nil {
			return err
		}
		if !removed {
			log.Info().Msg("No saved token for this endpoint")
			return nil
		}
		if err := creds.Save(); err != nil {
			return err
		}
		log.Info().Msgf("%s Removed admin token for %s", greenCheck, bold(endpoint))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
