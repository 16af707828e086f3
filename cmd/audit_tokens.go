package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/core"
)

var auditTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List currently active tokens",
	Long: `Lists the unexpired tokens issued by the server with the participant, action
and channel each one was issued for.`,
	Example: `  voxauth audit tokens --endpoint http://127.0.0.1:8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		tokens, err := cli.ListActiveTokens(cmd.Context())
		if err != nil {
			return logError(err, "", "failed to fetch active tokens")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(tokens)
		}
		if len(tokens) == 0 {
			log.Info().Msg("no active tokens")
			return nil
		}
		renderActiveTokens(tokens, time.Now())
		return nil
	},
}

func renderActiveTokens(tokens []core.TokenMetadata, now time.Time) {
	t := newTable("Issued", "Expires in", "User", "Action", "Channel", "Issuer", "Fingerprint")
	for _, tok := range tokens {
		t.AppendRow(table.Row{
			tok.IssuedAt.Local().Format(time.TimeOnly),
			fmt.Sprintf("%s %s", tok.ExpiresAt.Sub(now).Round(time.Second), faint("("+tok.ExpiresAt.Local().Format(time.TimeOnly)+")")),
			bold(tok.Username),
			string(tok.Action),
			orDash(tok.ChannelID),
			tok.Issuer,
			faint(truncate(tok.Fingerprint, 12)),
		})
	}
	t.Render()
}

func init() {
	auditCmd.AddCommand(auditTokensCmd)
	auditTokensCmd.Flags().Bool("json", false, "print the tokens as JSON")
}
