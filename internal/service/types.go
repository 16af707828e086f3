package service

import (
	"time"

	"github.com/darmiel/voxauth/internal/core"
)

// TokenParams are the inputs the voice SDK hands to a token provider.
type TokenParams struct {
	// Issuer is the tenant namespace. Not part of the V1 payload.
	Issuer string

	// Expiration is the requested token lifetime. Not part of the V1 payload.
	Expiration time.Duration

	// TargetURI is the participant URI acted upon (kick, mute). Optional.
	TargetURI string

	// Action is passed to the issuing endpoint as-is.
	Action core.Action

	// ChannelURI is the channel the action applies to. Optional.
	ChannelURI string

	// FromURI is the participant URI of the requester. Required.
	FromURI string

	// Realm is reserved for multi-realm routing. Not part of the V1 payload.
	Realm string
}

type IssueResponse struct {
	// Request is the payload that was sent to the issuer.
	Request *core.TokenRequest

	// Response is what the issuer answered.
	Response *core.TokenResponse

	// Metadata is the stored record of the issued token.
	Metadata core.TokenMetadata
}
