package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/issuers"
	"github.com/darmiel/voxauth/internal/policy"
)

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Loads the configuration, builds every issuer and compiles the admission policy
without starting the server.`,
	Example: `  voxauth config validate -f voxauth.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadConfig()
		if err != nil {
			return logError(err, "", "configuration is invalid")
		}
		registry, err := issuers.BuildRegistry(cfg.Issuers)
		if err != nil {
			return logError(err, "", "configuration is invalid")
		}
		pol, err := policy.Compile(cfg.Policy.Expr)
		if err != nil {
			return logError(err, "", "configuration is invalid")
		}

		t := newTable("Issuer", "Type", "Default")
		for _, ic := range cfg.Issuers {
			def := ""
			if ic.Name == cfg.Issuer {
				def = greenCheck
			}
			t.AppendRow(table.Row{bold(ic.Name), ic.Type, def})
		}
		t.Render()

		log.Info().
			Int("issuers", len(registry)).
			Str("policy", pol.String()).
			Str("addr", cfg.Server.Addr).
			Bool("admin_api", cfg.Server.AdminSigningKey != "").
			Msgf("%s Configuration is valid.", greenCheck)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	f.bindConfigFlag(configValidateCmd.Flags())
}
