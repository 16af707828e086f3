package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/identity"
)

type parsedURI struct {
	URI         string                    `json:"uri"`
	Kind        string                    `json:"kind"`
	Participant *core.ParticipantIdentity `json:"participant,omitempty"`
	Channel     *core.ChannelIdentity     `json:"channel,omitempty"`
	TypeName    string                    `json:"channelTypeName,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

func parseURI(uri string) parsedURI {
	out := parsedURI{URI: uri, Kind: "unknown"}

	if p := identity.ParseParticipant(uri); p.IsValid() {
		out.Kind = "participant"
		out.Participant = &p
		return out
	}
	if c := identity.ParseChannel(uri); c.IsValid() {
		out.Kind = "channel"
		out.Channel = &c
		name, err := c.ChannelTypeName()
		if err != nil {
			out.Error = err.Error()
		}
		out.TypeName = name
	}
	return out
}

var parseCmd = &cobra.Command{
	Use:   "parse <uri>...",
	Short: "Parse participant and channel URIs",
	Example: `  voxauth parse sip:.blindmelon-AppName-dev.beef.@tla.vivox.com
  voxauth parse sip:confctl-g-blindmelon-AppName-dev.testchannel@tla.vivox.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]parsedURI, 0, len(args))
		for _, arg := range args {
			results = append(results, parseURI(strings.TrimSpace(arg)))
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(results)
		}

		t := newTable("", "Kind", "Issuer", "ID", "Type", "Prefix", "Domain")

		for _, r := range results {
			switch {
			case r.Participant != nil:
				t.AppendRow(table.Row{
					greenCheck, r.Kind, orDash(r.Participant.Issuer), bold(r.Participant.UserID),
					orDash(""), orDash(""), orDash(r.Participant.Domain),
				})
			case r.Channel != nil:
				status, typ := greenCheck, r.TypeName
				if r.Error != "" {
					status, typ = redCross, r.Error
				}
				t.AppendRow(table.Row{
					status, r.Kind, orDash(r.Channel.Issuer), bold(r.Channel.ChannelID),
					typ, r.Channel.ChannelPrefix, orDash(r.Channel.Domain),
				})
			default:
				t.AppendRow(table.Row{redCross, r.Kind, faint(truncate(r.URI, 48)), "", "", "", ""})
			}
		}

		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("json", false, "print the parsed identities as JSON")
}
