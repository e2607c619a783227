package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
)

type TokenGenerateHandler struct {
	TokenService    *service.TokenService
	SettingsService *service.SettingsService
}

// ServeHTTP godoc
//
//	@Summary		Generate Invitation Token
//	@Description	Mint a single-use premium invitation token. The token can be redeemed until it expires,
//	@Description	and grants a membership of the same duration. Omitting duration_hours uses the configured default.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accesssdk.GenerateTokenRequest	false	"Token request"
//	@Success		201		{object}	accesssdk.TokenResponse			"id, token, issued_by, expires_at"
//	@Failure		400		{object}	accesssdk.APIError				"error, error_description"
//	@Failure		401		{object}	accesssdk.APIError				"error, error_description"
//	@Failure		403		{object}	accesssdk.APIError				"error, error_description"
//	@Failure		500		{object}	accesssdk.APIError				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens [post].
func (h *TokenGenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.GenerateTokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = h.SettingsService.Get().DefaultTokenDurationHours
	}

	issuedBy, ok := httpx.SubjectFromContext(ctx)
	if !ok {
		accesssdk.ErrUnauthorized.WriteError(w)
		return
	}

	tok, err := h.TokenService.Generate(ctx, issuedBy, duration)
	if err != nil {
		writeError(w, r, err, "Failed to generate token")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTokenResponse(tok, tok.Status(tok.IssuedAt)))
}

type TokenValidateHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invitation Token
//	@Description	Report whether a token can be redeemed. Unknown tokens return status not_found.
//	@Tags			Tokens
//	@Produce		json
//	@Param			token	path		string					true	"Token value"
//	@Success		200		{object}	accesssdk.TokenResponse	"token, status"
//	@Failure		401		{object}	accesssdk.APIError		"error, error_description"
//	@Failure		403		{object}	accesssdk.APIError		"error, error_description"
//	@Failure		500		{object}	accesssdk.APIError		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens/{token} [get].
func (h *TokenValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	value := r.PathValue("token")

	status, err := h.TokenService.Validate(ctx, value)
	if err != nil {
		writeError(w, r, err, "Failed to validate token")
		return
	}
	if status == domain.TokenNotFound {
		httpx.WriteJSON(w, http.StatusOK, accesssdk.TokenResponse{Token: value, Status: string(status)})
		return
	}

	tok, err := h.TokenService.Get(ctx, value)
	if err != nil {
		writeError(w, r, err, "Failed to load token")
		return
	}
	resp := toTokenResponse(tok, status)
	resp.Token = value
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type TokenRedeemHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invitation Token
//	@Description	Consume a token for a user and create or extend their premium membership.
//	@Description	A token is redeemed exactly once even under concurrent attempts.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accesssdk.RedeemTokenRequest	true	"Redeem request"
//	@Success		200		{object}	accesssdk.MembershipResponse	"membership"
//	@Failure		400		{object}	accesssdk.APIError				"error, error_description"
//	@Failure		404		{object}	accesssdk.APIError				"token_not_found"
//	@Failure		409		{object}	accesssdk.APIError				"token_already_used, membership_active"
//	@Failure		410		{object}	accesssdk.APIError				"token_expired"
//	@Failure		429		{object}	accesssdk.APIError				"rate_limit_exceeded"
//	@Security		BearerAuth
//	@Router			/v1/tokens/redeem [post].
func (h *TokenRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.RedeemTokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeBadRequest(w, "token is required")
		return
	}

	m, err := h.TokenService.Redeem(ctx, req.Token, req.UserID)
	if err != nil {
		if service.Code(err) != "" {
			slogx.FromContext(ctx).Info("redeem refused",
				slog.Int64("user_id", req.UserID),
				slog.String("reason", service.Code(err)),
			)
		}
		writeError(w, r, err, "Failed to redeem token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembershipResponse(m))
}
