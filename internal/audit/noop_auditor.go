package audit

import "github.com/darmiel/voxauth/internal/core"

var _ core.Auditor = (*NoopAuditor)(nil)

// NoopAuditor is an auditor that does nothing.
type NoopAuditor struct{}

func NewNoopAuditor() *NoopAuditor {
	return &NoopAuditor{}
}

func (n *NoopAuditor) Log(core.AuditEntry) error {
	return nil
}

func (n *NoopAuditor) Close() error {
	return nil
}
