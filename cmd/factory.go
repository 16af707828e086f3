package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/darmiel/voxauth/internal/audit"
	"github.com/darmiel/voxauth/internal/cliconfig"
	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/issuers"
	"github.com/darmiel/voxauth/internal/policy"
	"github.com/darmiel/voxauth/internal/service"
	"github.com/darmiel/voxauth/internal/store"
	"github.com/darmiel/voxauth/pkg/client"
)

type Factory struct {
	// Endpoint is the token issuing endpoint or voxauth server to talk to.
	Endpoint string

	// ConfigPath is the server configuration (issuers, policy, audit).
	ConfigPath string

	// CredentialsPath overrides where admin credentials are stored.
	CredentialsPath string
}

func NewFactory() *Factory {
	return &Factory{}
}

// GetClient returns a client for remote operations.
func (f *Factory) GetClient() (*client.Client, error) {
	endpoint := f.endpoint()
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint not configured (use --endpoint or set VOXAUTH_ENDPOINT)")
	}

	var token string
	if cfg, err := f.LoadCredentials(); err == nil {
		if cred, err := cfg.GetCredential(endpoint); err == nil { // token prio 1: saved credential
			token = cred.Token
		}
	}
	if flagToken := viper.GetString(AdminTokenKey); flagToken != "" { // token prio 2: flag or env
		token = flagToken
	}

	return client.New(endpoint, client.WithAuthToken(token))
}

// LoadCredentials loads the saved admin credentials.
func (f *Factory) LoadCredentials() (*cliconfig.CLIConfig, error) {
	path := f.CredentialsPath
	if path == "" {
		var err error
		if path, err = cliconfig.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return cliconfig.Load(path)
}

// endpoint returns the configured endpoint, flag first.
func (f *Factory) endpoint() string {
	if f.Endpoint != "" {
		return f.Endpoint
	}
	return viper.GetString(EndpointKey)
}

func (f *Factory) LoadConfig() (*config.Config, error) {
	if f.ConfigPath == "" {
		return nil, fmt.Errorf("config file not specified (use --config)")
	}
	return config.Load(f.ConfigPath)
}

// Components are the wired parts of a local token provider.
type Components struct {
	Config   *config.Config
	Issuer   core.TokenIssuer
	Auditor  core.Auditor
	Store    core.TokenStore
	Provider *service.TokenProvider
}

func (c *Components) Close() error {
	return c.Auditor.Close()
}

// BuildComponents wires issuer, policy, auditor and store from cfg.
func BuildComponents(_ context.Context, cfg *config.Config, withAudit bool) (*Components, error) {
	registry, err := issuers.BuildRegistry(cfg.Issuers)
	if err != nil {
		return nil, fmt.Errorf("building issuer registry: %w", err)
	}
	iss, err := issuers.Select(registry, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	pol, err := policy.Compile(cfg.Policy.Expr)
	if err != nil {
		return nil, err
	}

	var auditor core.Auditor = audit.NewNoopAuditor()
	if withAudit {
		if auditor, err = audit.New(cfg.Audit); err != nil {
			return nil, fmt.Errorf("creating auditor: %w", err)
		}
	}

	tokens := store.NewInMemoryTokenStore()
	return &Components{
		Config:   cfg,
		Issuer:   iss,
		Auditor:  auditor,
		Store:    tokens,
		Provider: service.NewTokenProvider(iss, auditor, tokens, pol, cfg.Defaults.Expiration),
	}, nil
}

func (f *Factory) bindConfigFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.ConfigPath, "config", "f", "", "The voxauth server config file to use")
}
