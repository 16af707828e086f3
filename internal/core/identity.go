package core

import "strings"

// Canonical channel type names as understood by the issuing endpoint.
const (
	ChannelTypeEcho          = "echo"
	ChannelTypePositional    = "positional"
	ChannelTypeNonPositional = "nonpositional"
)

var channelTypeNames = map[string]string{
	"e": ChannelTypeEcho,
	"d": ChannelTypePositional,
	"g": ChannelTypeNonPositional,
}

// ChannelIdentity is a parsed channel URI, e.g. "sip:confctl-g-issuer.channel@domain".
// A zero value represents "no channel".
type ChannelIdentity struct {
	// ChannelPrefix is the routing prefix (e.g. "confctl"). It is opaque and only kept for debugging.
	ChannelPrefix string `json:"channelPrefix"`

	// ChannelType is the raw single-letter type code (e.g. "g").
	ChannelType string `json:"channelType"`

	// Issuer is the tenant / application namespace.
	Issuer string `json:"issuer,omitempty"`

	// ChannelID is the short channel name.
	ChannelID string `json:"channelId"`

	// Domain is the service domain suffix.
	Domain string `json:"domain,omitempty"`
}

// IsValid reports whether prefix, id and type code are all present.
// Issuer and domain may be missing.
func (c ChannelIdentity) IsValid() bool {
	return !isBlank(c.ChannelPrefix) &&
		!isBlank(c.ChannelID) &&
		!isBlank(c.ChannelType)
}

// ChannelTypeName returns the canonical name of the type code.
func (c ChannelIdentity) ChannelTypeName() (string, error) {
	name, ok := channelTypeNames[c.ChannelType]
	if !ok {
		return "", UnknownChannelTypeError{Code: c.ChannelType}
	}
	return name, nil
}

// ChannelTypeCode is the inverse of ChannelIdentity.ChannelTypeName.
func ChannelTypeCode(name string) (string, error) {
	for code, n := range channelTypeNames {
		if n == name {
			return code, nil
		}
	}
	return "", UnknownChannelTypeError{Code: name}
}

// ParticipantIdentity is a parsed participant URI, e.g. "sip:.issuer.user.@domain".
type ParticipantIdentity struct {
	UserID string `json:"userId"`
	Issuer string `json:"issuer,omitempty"`
	Domain string `json:"domain,omitempty"`
}

func (p ParticipantIdentity) IsValid() bool {
	return !isBlank(p.UserID)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
