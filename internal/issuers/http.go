package issuers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/pkg/client"
)

const TypeHTTP = "http"

type HTTPIssuerConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

var _ core.TokenIssuer = (*HTTPIssuer)(nil)

// HTTPIssuer fetches tokens from a remote issuing endpoint.
type HTTPIssuer struct {
	name   string
	client *client.Client
}

func NewHTTPIssuer(cfg config.IssuerConfig) (*HTTPIssuer, error) {
	var conf HTTPIssuerConfig
	if err := decodeConfig(cfg, &conf); err != nil {
		return nil, err
	}

	opts := []client.Option{}
	if conf.Timeout > 0 {
		opts = append(opts, client.WithTimeout(conf.Timeout))
	}
	if conf.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(conf.UserAgent))
	}

	c, err := client.New(conf.URL, opts...)
	if err != nil {
		return nil, err
	}
	return &HTTPIssuer{
		name:   cfg.Name,
		client: c,
	}, nil
}

func (h *HTTPIssuer) Name() string {
	return h.name
}

func (h *HTTPIssuer) Issue(ctx context.Context, req core.TokenRequest) (*core.TokenResponse, error) {
	resp, correlationID, err := h.client.RequestToken(ctx, req)
	log.Ctx(ctx).Debug().
		Str("issuer", h.name).
		Str("upstream_correlation_id", correlationID).
		Err(err).
		Msg("issuing endpoint called")
	return resp, err
}
