package config

import (
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
server:
  admin_signing_key: s3cret
issuers:
  - name: local
    type: stub
    config:
      issuer: blindmelon-AppName-dev
      domain: tla.vivox.com
      key: dev-key
      ttl: 2m
defaults:
  realm: tla
policy:
  expr: 'Type != "kick" || Realm == "tla"'
audit:
  enabled: true
  type: memory
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Issuer != "local" {
		t.Errorf("Issuer = %q, want single issuer to become the default", cfg.Issuer)
	}
	if cfg.Defaults.Expiration != DefaultExpiration {
		t.Errorf("Defaults.Expiration = %v", cfg.Defaults.Expiration)
	}
	if cfg.Store.CleanupInterval != DefaultCleanupInterval {
		t.Errorf("Store.CleanupInterval = %v", cfg.Store.CleanupInterval)
	}
	if got := cfg.Issuers[0].Config["domain"]; got != "tla.vivox.com" {
		t.Errorf("issuer config domain = %v", got)
	}
	if cfg.Policy.Expr == "" {
		t.Error("policy expression was not decoded")
	}
}

func TestParseDurations(t *testing.T) {
	cfg, err := Parse([]byte(`
issuers: [{name: a, type: stub}]
defaults: {expiration: 30s}
store: {cleanup_interval: 1m}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Defaults.Expiration != 30*time.Second {
		t.Errorf("Defaults.Expiration = %v", cfg.Defaults.Expiration)
	}
	if cfg.Store.CleanupInterval != time.Minute {
		t.Errorf("Store.CleanupInterval = %v", cfg.Store.CleanupInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no issuers", `server: {addr: ":1"}`, "at least one issuer"},
		{"empty name", `issuers: [{type: stub}]`, "empty name"},
		{"empty type", `issuers: [{name: a}]`, "empty type"},
		{"duplicate", `issuers: [{name: a, type: stub}, {name: a, type: http}]`, "duplicate"},
		{"ambiguous", `issuers: [{name: a, type: stub}, {name: b, type: http}]`, "more than one issuer"},
		{"unknown default", "issuer: c\nissuers: [{name: a, type: stub}]", "not configured"},
		{"file audit without path", "issuers: [{name: a, type: stub}]\naudit: {enabled: true, type: file}", "audit.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
