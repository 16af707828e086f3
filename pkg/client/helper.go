package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/darmiel/voxauth/internal/api/middleware"
	"github.com/darmiel/voxauth/internal/api/presenter"
)

// APIError is an error response of a voxauth server or issuing endpoint.
// Body holds the raw response text when it carries more than the message.
type APIError struct {
	StatusCode    int
	CorrelationID string
	Message       string
	Body          string
}

func (e APIError) Error() string {
	msg := fmt.Sprintf("api error: '%s' (status %d, correlation: %s)", e.Message, e.StatusCode, e.CorrelationID)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (c *Client) get(ctx context.Context, url string, result any) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, url string, payload, result any) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", err
	}
	return c.do(req, result)
}

// newRequest creates a request carrying the correlation id of ctx, or a fresh one.
func (c *Client) newRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	correlationID := middleware.CorrelationCtx(ctx)
	if correlationID == "" {
		correlationID = middleware.NewCorrelationID()
	}
	req.Header.Set(middleware.CorrelationIDHeader, correlationID)
	return req, nil
}

// parseErrorResponse turns an error body into an APIError, if it looks like one.
func parseErrorResponse(statusCode int, correlationID string, body []byte) error {
	var errResp presenter.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		if errResp.CorrelationID != "" {
			correlationID = errResp.CorrelationID
		}
		return APIError{
			StatusCode:    statusCode,
			CorrelationID: correlationID,
			Message:       errResp.Error,
		}
	}
	return fmt.Errorf("api error: *unparsed '%s' (status %d)", string(body), statusCode)
}

func (c *Client) do(req *http.Request, result any) (string, error) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return req.Header.Get(middleware.CorrelationIDHeader), fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	correlationID := correlationFromResponse(req, resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return correlationID, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return correlationID, parseErrorResponse(resp.StatusCode, correlationID, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return correlationID, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return correlationID, nil
}

// correlationFromResponse prefers the id echoed by the server over the one that was sent.
func correlationFromResponse(req *http.Request, resp *http.Response) string {
	if resp != nil {
		if id := resp.Header.Get(middleware.CorrelationIDHeader); id != "" {
			return id
		}
	}
	return req.Header.Get(middleware.CorrelationIDHeader)
}
