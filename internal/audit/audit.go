package audit

import (
	"fmt"

	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
)

const (
	TypeMemory = "memory"
	TypeFile   = "file"

	defaultMemoryEntries = 1000
)

// New creates the auditor described by cfg.
func New(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case TypeMemory, "":
		n := cfg.MaxEntries
		if n == 0 {
			n = defaultMemoryEntries
		}
		return NewInMemoryAuditor(n), nil
	case TypeFile:
		return NewFileAuditor(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown audit type %q", cfg.Type)
	}
}
