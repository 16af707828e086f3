package issuers

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/darmiel/voxauth/internal/config"
)

// decodeConfig decodes the free-form config of an issuer into out.
// Durations may be given as strings ("90s") or as nanoseconds.
func decodeConfig(cfg config.IssuerConfig, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder for %s issuer '%s': %w", cfg.Type, cfg.Name, err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return fmt.Errorf("failed to decode config for %s issuer '%s': %w", cfg.Type, cfg.Name, err)
	}
	return nil
}
