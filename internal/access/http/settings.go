package http

import (
	"net/http"

	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
)

type SettingsGetHandler struct {
	SettingsService *service.SettingsService
}

// ServeHTTP godoc
//
//	@Summary		Get Settings
//	@Description	Return the engine settings currently in effect.
//	@Tags			Settings
//	@Produce		json
//	@Success		200	{object}	accesssdk.Settings	"settings"
//	@Security		BearerAuth
//	@Router			/v1/settings [get].
func (h *SettingsGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toSettings(h.SettingsService.Get()))
}

type SettingsUpdateHandler struct {
	SettingsService *service.SettingsService
}

// ServeHTTP godoc
//
//	@Summary		Update Settings
//	@Description	Change one or more settings. All fields are validated first and either all apply or none do.
//	@Description	A new wait time applies to requests already in the queue.
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accesssdk.UpdateSettingsRequest	true	"Settings to change"
//	@Success		200		{object}	accesssdk.Settings				"settings"
//	@Failure		400		{object}	accesssdk.APIError				"invalid_wait_time, invalid_duration, invalid_setting"
//	@Security		BearerAuth
//	@Router			/v1/settings [put].
func (h *SettingsUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accesssdk.UpdateSettingsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	cfg, err := h.SettingsService.Update(r.Context(), service.SettingsPatch{
		WaitTimeMinutes:           req.WaitTimeMinutes,
		DefaultTokenDurationHours: req.DefaultTokenDurationHours,
		TokenLength:               req.TokenLength,
	})
	if err != nil {
		writeError(w, r, err, "Failed to update settings")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSettings(cfg))
}
