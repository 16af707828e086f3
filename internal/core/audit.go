package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "token.issue", "token.relay")
	Action string `json:"action"`

	// Request details
	Username       string `json:"username,omitempty"`
	RequestType    Action `json:"request_type,omitempty"`
	ChannelID      string `json:"channel_id,omitempty"`
	TargetUsername string `json:"target_username,omitempty"`
	Issuer         string `json:"issuer,omitempty"`
	Realm          string `json:"realm,omitempty"`

	Granted          bool   `json:"granted"`
	Error            string `json:"error,omitempty"`
	TokenFingerprint string `json:"token_fingerprint,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// AuditReader is implemented by auditors that can return past entries.
type AuditReader interface {
	GetRecent(limit int) ([]AuditEntry, error)
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
}
