package accesssdk

import (
	"context"
	"net/http"
	"strconv"
)

// GetMembership returns the user's active membership. Requires access:member.
func (c *Client) GetMembership(ctx context.Context, userID int64) (*MembershipResponse, error) {
	path := "/v1/memberships/" + strconv.FormatInt(userID, 10)
	return do[MembershipResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}

// RenewMembership extends an active membership. Requires access:admin.
func (c *Client) RenewMembership(ctx context.Context, userID int64, req RenewMembershipRequest) (*MembershipResponse, error) {
	path := "/v1/memberships/" + strconv.FormatInt(userID, 10) + "/renew"
	return do[MembershipResponse](ctx, c, http.MethodPost, path, req, http.StatusOK)
}
