package accesssdk

import (
	"context"
	"net/http"
	"net/url"
)

// GenerateToken mints an invitation token. Requires access:admin.
func (c *Client) GenerateToken(ctx context.Context, req GenerateTokenRequest) (*TokenResponse, error) {
	return do[TokenResponse](ctx, c, http.MethodPost, "/v1/tokens", req, http.StatusCreated)
}

// ValidateToken reports the status of a token. Unknown tokens come back
// with status not_found rather than an error. Requires access:admin.
func (c *Client) ValidateToken(ctx context.Context, token string) (*TokenResponse, error) {
	return do[TokenResponse](ctx, c, http.MethodGet, "/v1/tokens/"+url.PathEscape(token), nil, http.StatusOK)
}

// RedeemToken consumes a token for a user and returns the resulting
// membership. Requires access:member.
func (c *Client) RedeemToken(ctx context.Context, req RedeemTokenRequest) (*MembershipResponse, error) {
	return do[MembershipResponse](ctx, c, http.MethodPost, "/v1/tokens/redeem", req, http.StatusOK)
}
