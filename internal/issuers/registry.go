package issuers

import (
	"fmt"

	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
)

// BuildRegistry creates all configured issuers, keyed by name.
func BuildRegistry(cfgs []config.IssuerConfig) (map[string]core.TokenIssuer, error) {
	registry := make(map[string]core.TokenIssuer, len(cfgs))
	for _, cfg := range cfgs {
		var (
			iss core.TokenIssuer
			err error
		)
		switch cfg.Type {
		case TypeHTTP:
			iss, err = NewHTTPIssuer(cfg)
		case TypeStub:
			iss, err = NewStubIssuer(cfg)
		default:
			return nil, fmt.Errorf("unknown issuer type %q for issuer %q", cfg.Type, cfg.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("building %s issuer %q: %w", cfg.Type, cfg.Name, err)
		}
		registry[cfg.Name] = iss
	}
	return registry, nil
}

// Select returns the issuer called name.
func Select(registry map[string]core.TokenIssuer, name string) (core.TokenIssuer, error) {
	iss, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("issuer %q is not configured", name)
	}
	return iss, nil
}
