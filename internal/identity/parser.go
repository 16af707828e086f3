// Package identity parses the participant and channel URIs handed out by the voice SDK.
package identity

import (
	"regexp"
	"strings"

	"github.com/darmiel/voxauth/internal/core"
)

// The type code is a single letter; this is what separates it from hyphenated issuer names.
var (
	channelRegex     = regexp.MustCompile(`([a-zA-Z]+):(.+)-([a-zA-Z])-(.+)\.(.+)@(.+)`)
	participantRegex = regexp.MustCompile(`([a-zA-Z]+):\.(.+)\.(.+)\.@(.+)`)
)

// ParseChannel extracts a ChannelIdentity from a channel URI.
// Blank or non-matching input results in an empty (invalid) identity.
func ParseChannel(uri string) core.ChannelIdentity {
	if strings.TrimSpace(uri) == "" {
		return core.ChannelIdentity{}
	}
	m := channelRegex.FindStringSubmatch(uri)
	if m == nil {
		return core.ChannelIdentity{}
	}
	// m[1] is the scheme label
	return core.ChannelIdentity{
		ChannelPrefix: m[2],
		ChannelType:   m[3],
		Issuer:        m[4],
		ChannelID:     m[5],
		Domain:        m[6],
	}
}

// ParseParticipant extracts a ParticipantIdentity from a participant URI.
// Blank or non-matching input results in an empty (invalid) identity.
func ParseParticipant(uri string) core.ParticipantIdentity {
	if strings.TrimSpace(uri) == "" {
		return core.ParticipantIdentity{}
	}
	m := participantRegex.FindStringSubmatch(uri)
	if m == nil {
		return core.ParticipantIdentity{}
	}
	return core.ParticipantIdentity{
		Issuer: m[2],
		UserID: m[3],
		Domain: m[4],
	}
}
