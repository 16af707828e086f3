package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/darmiel/voxauth/internal/core"
)

var errMissingAccessToken = errors.New("accessToken is missing")

// RequestToken sends req to the issuing endpoint and returns the issued token and the correlation
// id of the exchange. The request is not retried.
//
// A body that is not a TokenResponse, or one without an access token, is reported as
// core.IssuerResponseMalformedError carrying the raw body.
func (c *Client) RequestToken(ctx context.Context, req core.TokenRequest) (*core.TokenResponse, string, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, c.tokenURL(), req)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, correlationFromResponse(httpReq, nil), fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	correlationID := correlationFromResponse(httpReq, resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, correlationID, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if errors.As(parseErrorResponse(resp.StatusCode, correlationID, body), &apiErr) {
			// issuers may put details next to "error"
			apiErr.Body = string(body)
			return nil, correlationID, apiErr
		}
	}

	var result core.TokenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, correlationID, core.IssuerResponseMalformedError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        err,
		}
	}
	if result.AccessToken == "" {
		return nil, correlationID, core.IssuerResponseMalformedError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errMissingAccessToken,
		}
	}

	return &result, correlationID, nil
}

// ResolveRequest carries raw identity parameters to the broker's resolve route.
type ResolveRequest struct {
	Issuer     string      `json:"issuer,omitempty"`
	Expiration int64       `json:"expiration,omitempty"` // seconds
	TargetURI  string      `json:"targetUri,omitempty"`
	Action     core.Action `json:"action"`
	ChannelURI string      `json:"channelUri,omitempty"`
	FromURI    string      `json:"fromUri"`
	Realm      string      `json:"realm,omitempty"`
}

// ResolveToken asks a voxauth server to build the request from identity URIs and fetch a token.
func (c *Client) ResolveToken(ctx context.Context, req ResolveRequest) (*core.TokenResponse, string, error) {
	var result core.TokenResponse
	correlationID, err := c.post(ctx, c.url().setPath(ResolveTokenRoute).build(), req, &result)
	if err != nil {
		return nil, correlationID, err
	}
	return &result, correlationID, nil
}
