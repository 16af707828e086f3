package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the audit log and view active tokens",
	Long: `Reads the admin API of a voxauth server. Requires a bearer token with the admin
role, passed via --admin-token or VOXAUTH_ADMIN_TOKEN.`,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.PersistentFlags().String("admin-token", "", "admin bearer token")
	_ = viper.BindPFlag(AdminTokenKey, auditCmd.PersistentFlags().Lookup("admin-token"))
}
