package client

import (
	"context"

	"github.com/darmiel/voxauth/internal/buildinfo"
	"github.com/darmiel/voxauth/internal/core"
)

func (c *Client) Info(ctx context.Context) (*buildinfo.Info, string, error) {
	var info buildinfo.Info
	correlationID, err := c.get(ctx, c.url().setPath(AboutRoute).build(), &info)
	if err != nil {
		return nil, correlationID, err
	}
	return &info, correlationID, nil
}

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
func (c *Client) ListAudits(ctx context.Context, limit uint) ([]core.AuditEntry, error) {
	var resp []core.AuditEntry
	_, err := c.get(ctx, c.url().
		setPath(ListAuditsRoute).
		addQueryParam("limit", limit).
		build(), &resp)
	return resp, err
}

// ListActiveTokens retrieves the list of currently active tokens from the server.
func (c *Client) ListActiveTokens(ctx context.Context) ([]core.TokenMetadata, error) {
	var resp []core.TokenMetadata
	_, err := c.get(ctx, c.url().
		setPath(ListActiveTokensRoute).
		build(), &resp)
	return resp, err
}
