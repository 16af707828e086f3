package core

import (
	"errors"
	"fmt"
)

// ErrInvalidFromIdentity is returned when the requesting participant URI is missing or cannot
// be parsed. Every token must be attributable to a signed-in participant.
var ErrInvalidFromIdentity = errors.New("unable to extract user ID from uri")

// ErrPolicyDenied is returned when the configured admission policy rejects a request.
var ErrPolicyDenied = errors.New("request denied by policy")

// UnknownChannelTypeError means a valid channel identity carried a type code outside of the
// known vocabulary. This points to grammar drift rather than bad user input.
type UnknownChannelTypeError struct {
	Code string
}

func (e UnknownChannelTypeError) Error() string {
	return fmt.Sprintf("unknown channel type: %s", e.Code)
}

// IssuerResponseMalformedError is returned when the issuing endpoint answered with a body that
// does not match the TokenResponse shape. Body holds the raw response text.
type IssuerResponseMalformedError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e IssuerResponseMalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed issuer response (status %d): %s: %v", e.StatusCode, e.Body, e.Err)
	}
	return fmt.Sprintf("malformed issuer response (status %d): %s", e.StatusCode, e.Body)
}

func (e IssuerResponseMalformedError) Unwrap() error {
	return e.Err
}
