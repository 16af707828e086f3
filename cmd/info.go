package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/buildinfo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show build information of this binary or of a server",
	Long: `Without an endpoint the build information of the local binary is printed.
With --endpoint (or VOXAUTH_ENDPOINT) the server's /v1/about is queried instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.endpoint() == "" {
			local := buildinfo.GetBuildInfo()
			printInfo("local", &local)
			return nil
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}
		remote, correlation, err := cli.Info(cmd.Context())
		if err != nil {
			return logError(err, correlation, "failed to get info from server")
		}
		printInfo(f.endpoint(), remote)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(source string, info *buildinfo.Info) {
	fmt.Printf("%s %s\n", bold(info.Service), faint("("+source+")"))
	for _, row := range [][2]string{
		{"version", info.Version},
		{"commit", info.CommitHash},
		{"about", info.About},
	} {
		if row[1] == "" {
			continue
		}
		fmt.Printf("  %s %s\n", faint(fmt.Sprintf("%-8s", row[0])), row[1])
	}
}
