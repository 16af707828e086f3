package core

import "time"

// Action is the kind of operation a token is requested for.
// The set is open: the issuing endpoint owns the vocabulary, the constants below are only the
// actions known at the time of writing.
type Action string

const (
	ActionLogin      Action = "login"
	ActionJoin       Action = "join"
	ActionJoinMuted  Action = "join_muted"
	ActionKick       Action = "kick"
	ActionMute       Action = "mute"
	ActionTranscribe Action = "trxn"
)

func (a Action) String() string {
	return string(a)
}

// TokenRequest is the payload sent to the token-issuing endpoint.
// Optional fields are omitted from the JSON when empty, never sent as null.
type TokenRequest struct {
	Type           Action `json:"type"`
	Username       string `json:"username"`
	ChannelID      string `json:"channelId,omitempty"`
	ChannelType    string `json:"channelType,omitempty"`
	TargetUsername string `json:"targetUsername,omitempty"`
}

// TokenResponse is returned by the token-issuing endpoint.
type TokenResponse struct {
	// AccessToken is the signed bearer token. Required.
	AccessToken string `json:"accessToken"`

	// URI is an optional identity URI the token was issued for.
	URI string `json:"uri,omitempty"`
}

// TokenMetadata represents the state of an issued token.
type TokenMetadata struct {
	// CorrelationID is the ID of the request that fetched the token.
	CorrelationID string `json:"correlation_id"`

	Username    string `json:"username"`
	Action      Action `json:"action"`
	ChannelID   string `json:"channel_id,omitempty"`
	Issuer      string `json:"issuer"`
	Fingerprint string `json:"fingerprint"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
