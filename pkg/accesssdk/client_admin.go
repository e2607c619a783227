package accesssdk

import (
	"context"
	"net/http"
	"net/url"
)

// RunJob triggers a scheduler job and waits for its report. Requires access:admin.
func (c *Client) RunJob(ctx context.Context, name string) (*JobReport, error) {
	return do[JobReport](ctx, c, http.MethodPost, "/v1/jobs/"+url.PathEscape(name)+"/run", nil, http.StatusOK)
}

// ListJobs returns every scheduler job with its state. Requires access:admin.
func (c *Client) ListJobs(ctx context.Context) (*JobsResponse, error) {
	return do[JobsResponse](ctx, c, http.MethodGet, "/v1/jobs", nil, http.StatusOK)
}

// GetSettings returns the engine settings. Requires access:admin.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	return do[Settings](ctx, c, http.MethodGet, "/v1/settings", nil, http.StatusOK)
}

// UpdateSettings changes settings atomically. Requires access:admin.
func (c *Client) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	return do[Settings](ctx, c, http.MethodPut, "/v1/settings", req, http.StatusOK)
}
