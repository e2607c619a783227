package accesssdk

import (
	"context"
	"net/http"
)

// GetLiveness calls /livez.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return do[HealthResponse](ctx, c, http.MethodGet, "/livez", nil, http.StatusOK)
}

// GetReadiness calls /readyz. A degraded service answers 503, which is
// returned as an *APIError.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return do[HealthResponse](ctx, c, http.MethodGet, "/readyz", nil, http.StatusOK)
}
