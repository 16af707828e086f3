package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/api/middleware"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/service"
	"github.com/darmiel/voxauth/pkg/client"
)

type tokenFlags struct {
	from       string
	channel    string
	target     string
	action     string
	issuer     string
	realm      string
	expiration time.Duration
	dryRun     bool
	resolve    bool
	showJSON   bool
}

var tf tokenFlags

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Build a token request and fetch a token",
	Long: `Builds the token request for a participant and action and fetches a signed token.

With -f the configured issuer is used directly. Otherwise the request is sent to
--endpoint, which is either a token issuing endpoint or a voxauth server (use
--resolve to let the server build the request).`,
	Example: `  voxauth token -f voxauth.yaml --action login --from sip:.issuer.beef.@tla.vivox.com
  voxauth token --endpoint http://127.0.0.1:8000/v1/token --action join \
      --from sip:.issuer.beef.@tla.vivox.com --channel sip:confctl-g-issuer.lobby@tla.vivox.com
  voxauth token --dry-run --action kick --from ... --target sip:.issuer.jerky.@tla.vivox.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := middleware.WithCorrelationID(cmd.Context(), middleware.NewCorrelationID())

		params := service.TokenParams{
			Issuer:     tf.issuer,
			Expiration: tf.expiration,
			TargetURI:  tf.target,
			Action:     core.Action(tf.action),
			ChannelURI: tf.channel,
			FromURI:    tf.from,
			Realm:      tf.realm,
		}

		if tf.resolve {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			resp, correlationID, err := cli.ResolveToken(ctx, client.ResolveRequest{
				Issuer:     params.Issuer,
				Expiration: int64(params.Expiration / time.Second),
				TargetURI:  params.TargetURI,
				Action:     params.Action,
				ChannelURI: params.ChannelURI,
				FromURI:    params.FromURI,
				Realm:      params.Realm,
			})
			if err != nil {
				return logError(err, correlationID, "failed to resolve token")
			}
			return printToken(resp, correlationID)
		}

		req, err := service.BuildTokenRequest(params)
		if err != nil {
			return err
		}

		if tf.dryRun {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(req)
		}

		if f.ConfigPath != "" {
			cfg, err := f.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			c, err := BuildComponents(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer c.Close()

			log.Debug().Str("issuer", c.Issuer.Name()).Msg("Issuing token locally...")
			res, err := c.Provider.IssueToken(ctx, params)
			if err != nil {
				return logError(err, middleware.CorrelationCtx(ctx), "failed to issue token")
			}
			return printToken(res.Response, res.Metadata.CorrelationID)
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}
		log.Debug().Msg("Requesting token from endpoint...")
		resp, correlationID, err := cli.RequestToken(ctx, *req)
		if err != nil {
			return logError(err, correlationID, "failed to fetch token")
		}
		return printToken(resp, correlationID)
	},
}

func printToken(resp *core.TokenResponse, correlationID string) error {
	if tf.showJSON {
		return json.NewEncoder(os.Stdout).Encode(resp)
	}
	log.Info().Str("correlation_id", correlationID).Msgf("%s token issued", greenCheck)
	if resp.URI != "" {
		log.Info().Msgf("uri: %s", resp.URI)
	}
	fmt.Println(resp.AccessToken)
	return nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	flags := tokenCmd.Flags()
	flags.StringVar(&tf.from, "from", "", "participant URI of the requester (required)")
	flags.StringVar(&tf.channel, "channel", "", "channel URI the action applies to")
	flags.StringVar(&tf.target, "target", "", "participant URI acted upon (kick, mute)")
	flags.StringVarP(&tf.action, "action", "a", string(core.ActionLogin), "action, e.g. login, join, join_muted, kick, mute, trxn")
	flags.StringVar(&tf.issuer, "issuer", "", "tenant issuer")
	flags.StringVar(&tf.realm, "realm", "", "realm")
	flags.DurationVar(&tf.expiration, "expiration", 0, "requested token lifetime")
	flags.BoolVar(&tf.dryRun, "dry-run", false, "print the built request without fetching a token")
	flags.BoolVar(&tf.resolve, "resolve", false, "let the voxauth server at --endpoint build the request")
	flags.BoolVar(&tf.showJSON, "json", false, "print the issuer response as JSON")
	f.bindConfigFlag(flags)

	_ = tokenCmd.MarkFlagRequired("from")
	tokenCmd.MarkFlagsMutuallyExclusive("dry-run", "resolve")
}
