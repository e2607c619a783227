package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
)

// writeError maps an engine error onto the API error body. Anything that is
// not a typed engine error is logged and reported as a server error with msg.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var svcErr *service.Error
	switch {
	case errors.As(err, &svcErr):
		accesssdk.NewAPIError(statusForKind(svcErr.Kind), svcErr.Code, svcErr.Msg).WriteError(w)
	case errors.Is(err, service.ErrSchedulerStopped):
		accesssdk.NewAPIError(http.StatusServiceUnavailable, accesssdk.ErrorCodeUnavailable,
			"scheduler is shutting down").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
		accesssdk.NewAPIError(http.StatusInternalServerError, accesssdk.ErrorCodeServerError, msg).WriteError(w)
	}
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, service.ErrExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	accesssdk.NewAPIError(http.StatusBadRequest, accesssdk.ErrorCodeInvalidRequest, desc).WriteError(w)
}

// pathUserID parses the {user_id} path value. It writes the error response
// and returns false when the value is not a positive integer.
func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil || id <= 0 {
		accesssdk.NewAPIError(http.StatusBadRequest, accesssdk.ErrorCodeInvalidUserID,
			"user_id must be a positive integer").WriteError(w)
		return 0, false
	}
	return id, true
}
