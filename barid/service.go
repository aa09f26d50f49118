package barid

import (
	"context"
	"net/http"
)

// Domains returns the email domains the service accepts
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	var domains []string
	if err := c.call(ctx, http.MethodGet, "/domains", nil, classifyEmailKeyed, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// Health reports the status of the service's worker, database and KV store
func (c *Client) Health(ctx context.Context) (*ServerHealth, error) {
	var health ServerHealth
	if err := c.call(ctx, http.MethodGet, "/health", nil, classifyIDKeyed, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
