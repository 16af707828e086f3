package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultAddr            = ":8000"
	DefaultExpiration      = 90 * time.Second
	DefaultCleanupInterval = 5 * time.Minute
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Issuer   string         `yaml:"issuer"`
	Issuers  []IssuerConfig `yaml:"issuers"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Policy   PolicyConfig   `yaml:"policy"`
	Audit    AuditConfig    `yaml:"audit"`
	Store    StoreConfig    `yaml:"store"`
}

type ServerConfig struct {
	// Addr is the listen address of the HTTP API, e.g. ":8000".
	Addr string `yaml:"addr"`

	// AdminSigningKey is the HMAC key admin bearer tokens are verified with.
	// The admin routes are not mounted when it is empty.
	AdminSigningKey string `yaml:"admin_signing_key"`
}

// IssuerConfig holds configuration for a token issuing backend.
type IssuerConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"` // e.g., "http", "stub"
	Config map[string]any `yaml:"config"`
}

// DefaultsConfig is applied to requests that leave the corresponding field empty.
type DefaultsConfig struct {
	Issuer     string        `yaml:"issuer"`
	Realm      string        `yaml:"realm"`
	Expiration time.Duration `yaml:"expiration"`
}

// PolicyConfig holds the admission expression evaluated for every request.
type PolicyConfig struct {
	Expr string `yaml:"expr"`
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	Type       string `yaml:"type"` // e.g., "file", "memory"
	MaxEntries int    `yaml:"max_entries"`
}

type StoreConfig struct {
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Defaults.Expiration == 0 {
		c.Defaults.Expiration = DefaultExpiration
	}
	if c.Store.CleanupInterval == 0 {
		c.Store.CleanupInterval = DefaultCleanupInterval
	}
	if c.Issuer == "" && len(c.Issuers) == 1 {
		c.Issuer = c.Issuers[0].Name
	}
}

func (c *Config) Validate() error {
	if len(c.Issuers) == 0 {
		return errors.New("at least one issuer is required")
	}

	names := make(map[string]struct{}, len(c.Issuers))
	for idx, i := range c.Issuers {
		if i.Name == "" {
			return fmt.Errorf("issuer at index %d has empty name", idx)
		}
		if i.Type == "" {
			return fmt.Errorf("issuer '%s' has empty type", i.Name)
		}
		if _, dup := names[i.Name]; dup {
			return fmt.Errorf("duplicate issuer name '%s'", i.Name)
		}
		names[i.Name] = struct{}{}
	}

	if c.Issuer == "" {
		return errors.New("issuer must be set when more than one issuer is configured")
	}
	if _, ok := names[c.Issuer]; !ok {
		return fmt.Errorf("issuer '%s' is not configured", c.Issuer)
	}

	if c.Defaults.Expiration < 0 {
		return errors.New("defaults.expiration must not be negative")
	}
	if c.Store.CleanupInterval < 0 {
		return errors.New("store.cleanup_interval must not be negative")
	}
	if c.Audit.Enabled && c.Audit.Type == "file" && c.Audit.Path == "" {
		return errors.New("audit.path is required for file audit")
	}

	return nil
}
