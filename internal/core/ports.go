package core

import "context"

// TokenIssuer signs token requests.
// Implementations: remote HTTP issuing endpoint, local stub signer.
type TokenIssuer interface {
	// Name returns the identifier of this issuer (as used in config).
	Name() string

	// Issue sends the request to the signer and returns its response.
	Issue(ctx context.Context, req TokenRequest) (*TokenResponse, error)
}

// TokenStore manages the metadata of issued tokens.
type TokenStore interface {
	// Save records a newly issued token.
	Save(ctx context.Context, meta TokenMetadata) error

	// ListActive returns tokens that have not expired yet.
	ListActive(ctx context.Context) ([]TokenMetadata, error)

	// DeleteExpired removes expired tokens and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
