package cmd

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/core"
)

var auditLogCmd = &cobra.Command{
	Use:     "log",
	Short:   "Retrieve and display audit log entries",
	Example: `  voxauth audit log --endpoint http://127.0.0.1:8000 --limit 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetUint("limit")
		if err != nil {
			return err
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		entries, err := cli.ListAudits(cmd.Context(), limit)
		if err != nil {
			return logError(err, "", "failed to fetch audit log")
		}
		log.Debug().Int("count", len(entries)).Msg("fetched audit log")

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(entries)
		}
		renderAuditLog(entries)
		return nil
	},
}

func renderAuditLog(entries []core.AuditEntry) {
	t := newTable("Time", "Action", "Type", "User", "Channel", "Target", "Granted", "Error")
	for _, e := range entries {
		granted := redCross
		if e.Granted {
			granted = greenCheck
		}
		t.AppendRow(table.Row{
			e.Time.Local().Format(time.DateTime),
			e.Action,
			string(e.RequestType),
			bold(orDash(e.Username)),
			orDash(e.ChannelID),
			orDash(truncate(e.TargetUsername, 32)),
			granted,
			truncate(e.Error, 48),
		})
	}
	t.Render()
}

func init() {
	auditCmd.AddCommand(auditLogCmd)
	auditLogCmd.Flags().Uint("limit", 50, "maximum number of entries")
	auditLogCmd.Flags().Bool("json", false, "print the entries as JSON")
}
