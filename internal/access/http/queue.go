package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
)

type QueueEnqueueHandler struct {
	QueueService    *service.QueueService
	SettingsService *service.SettingsService
	Now             func() time.Time
}

// ServeHTTP godoc
//
//	@Summary		Request Free Access
//	@Description	File a free access request for the user. A user with a pending request gets that request back
//	@Description	instead of a new one (200 rather than 201). The user is admitted once the wait time has passed.
//	@Tags			Queue
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accesssdk.EnqueueRequest		true	"Enqueue request"
//	@Success		200		{object}	accesssdk.QueueStatusResponse	"existing request"
//	@Success		201		{object}	accesssdk.QueueStatusResponse	"new request"
//	@Failure		400		{object}	accesssdk.APIError				"invalid_user_id"
//	@Failure		429		{object}	accesssdk.APIError				"rate_limit_exceeded"
//	@Security		BearerAuth
//	@Router			/v1/queue [post].
func (h *QueueEnqueueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accesssdk.EnqueueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	pending, created, err := h.QueueService.Enqueue(r.Context(), req.UserID)
	if err != nil {
		writeError(w, r, err, "Failed to enqueue request")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	wait := h.SettingsService.Get().WaitTimeMinutes
	httpx.WriteJSON(w, status, toQueueStatus(pending, wait, created, h.Now()))
}

type QueueStatusHandler struct {
	QueueService    *service.QueueService
	SettingsService *service.SettingsService
	Now             func() time.Time
}

// ServeHTTP godoc
//
//	@Summary		Queue Status
//	@Description	Return the user's pending request and the whole minutes left before admission,
//	@Description	computed with the current wait time.
//	@Tags			Queue
//	@Produce		json
//	@Param			user_id	path		int								true	"User ID"
//	@Success		200		{object}	accesssdk.QueueStatusResponse	"pending request"
//	@Failure		400		{object}	accesssdk.APIError				"invalid_user_id"
//	@Failure		404		{object}	accesssdk.APIError				"request_not_found"
//	@Security		BearerAuth
//	@Router			/v1/queue/{user_id} [get].
func (h *QueueStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	pending, err := h.QueueService.GetPending(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to load request")
		return
	}

	wait := h.SettingsService.Get().WaitTimeMinutes
	httpx.WriteJSON(w, http.StatusOK, toQueueStatus(pending, wait, false, h.Now()))
}
