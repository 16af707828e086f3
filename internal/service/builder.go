package service

import (
	"fmt"
	"strings"

	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/identity"
)

// BuildTokenRequest maps the SDK parameters to the payload for the issuing endpoint.
//
// The from URI must resolve to a participant. A channel is only included if its URI parses.
// The target is sent as the raw URI unless it resolves to a participant, in which case the
// user id is sent instead, so a malformed target still reaches the issuer's own validation.
func BuildTokenRequest(p TokenParams) (*core.TokenRequest, error) {
	from := identity.ParseParticipant(p.FromURI)
	if !from.IsValid() {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidFromIdentity, p.FromURI)
	}

	req := &core.TokenRequest{
		Type:           p.Action,
		Username:       from.UserID,
		TargetUsername: p.TargetURI,
	}

	if channel := identity.ParseChannel(p.ChannelURI); channel.IsValid() {
		typeName, err := channel.ChannelTypeName()
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", p.ChannelURI, err)
		}
		req.ChannelID = channel.ChannelID
		req.ChannelType = typeName
	}

	if target := identity.ParseParticipant(p.TargetURI); target.IsValid() {
		req.TargetUsername = target.UserID
	}

	return req, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
