package http

import (
	"net/http"

	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
)

type MembershipGetHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP godoc
//
//	@Summary		Get Active Membership
//	@Description	Return the user's active premium membership.
//	@Tags			Memberships
//	@Produce		json
//	@Param			user_id	path		int								true	"User ID"
//	@Success		200		{object}	accesssdk.MembershipResponse	"membership"
//	@Failure		400		{object}	accesssdk.APIError				"invalid_user_id"
//	@Failure		404		{object}	accesssdk.APIError				"membership_not_found"
//	@Security		BearerAuth
//	@Router			/v1/memberships/{user_id} [get].
func (h *MembershipGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	m, err := h.LedgerService.GetActive(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to load membership")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMembershipResponse(m))
}

type MembershipRenewHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP godoc
//
//	@Summary		Renew Membership
//	@Description	Extend the user's active membership by extra_hours. Expired memberships cannot be renewed.
//	@Tags			Memberships
//	@Accept			json
//	@Produce		json
//	@Param			user_id	path		int									true	"User ID"
//	@Param			request	body		accesssdk.RenewMembershipRequest	true	"Renew request"
//	@Success		200		{object}	accesssdk.MembershipResponse		"membership"
//	@Failure		400		{object}	accesssdk.APIError					"invalid_duration"
//	@Failure		404		{object}	accesssdk.APIError					"membership_not_found"
//	@Security		BearerAuth
//	@Router			/v1/memberships/{user_id}/renew [post].
func (h *MembershipRenewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req accesssdk.RenewMembershipRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	m, err := h.LedgerService.Renew(r.Context(), userID, req.ExtraHours)
	if err != nil {
		writeError(w, r, err, "Failed to renew membership")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMembershipResponse(m))
}
