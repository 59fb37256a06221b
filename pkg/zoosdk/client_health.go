package zoosdk

import (
	"context"
	"net/http"
)

// TestConnection probes the backend's authenticated self-test endpoint.
// The endpoint answers plain text, not JSON, so this returns the raw body.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	var out string
	if err := c.do(ctx, http.MethodGet, "/auth/test", nil, &out); err != nil {
		return "", err
	}
	return out, nil
}
