package accesssdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/lounge/pkg/httpx"
)

// Error codes returned in the "error" field of failed responses.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidDuration    = "invalid_duration"
	ErrorCodeInvalidUserID      = "invalid_user_id"
	ErrorCodeInvalidWaitTime    = "invalid_wait_time"
	ErrorCodeInvalidSetting     = "invalid_setting"
	ErrorCodeTokenNotFound      = "token_not_found"
	ErrorCodeTokenAlreadyUsed   = "token_already_used"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeMembershipNotFound = "membership_not_found"
	ErrorCodeMembershipActive   = "membership_active"
	ErrorCodeRequestNotFound    = "request_not_found"
	ErrorCodeUnknownJob         = "unknown_job"
	ErrorCodeJobRunning         = "job_running"
	ErrorCodeUnavailable        = "unavailable"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeInsufficientScope  = "insufficient_scope"
	ErrorCodeRateLimitExceeded  = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error body every endpoint returns. Handlers write it with
// WriteError and the client decodes it from failed responses.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so a decoded error equals its predefined counterpart.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as the JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, e)
}

// NewAPIError builds an APIError.
func NewAPIError(status int, code, description string) *APIError {
	return &APIError{StatusCode: status, Code: code, Description: description}
}

var (
	ErrInvalidRequest     = NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "the request is malformed")
	ErrTokenNotFound      = NewAPIError(http.StatusNotFound, ErrorCodeTokenNotFound, "token not found")
	ErrTokenAlreadyUsed   = NewAPIError(http.StatusConflict, ErrorCodeTokenAlreadyUsed, "token has already been used")
	ErrTokenExpired       = NewAPIError(http.StatusGone, ErrorCodeTokenExpired, "token has expired")
	ErrMembershipNotFound = NewAPIError(http.StatusNotFound, ErrorCodeMembershipNotFound, "no active membership")
	ErrMembershipActive   = NewAPIError(http.StatusConflict, ErrorCodeMembershipActive, "user already has an active membership")
	ErrRequestNotFound    = NewAPIError(http.StatusNotFound, ErrorCodeRequestNotFound, "no pending access request")
	ErrUnknownJob         = NewAPIError(http.StatusNotFound, ErrorCodeUnknownJob, "unknown job")
	ErrJobRunning         = NewAPIError(http.StatusConflict, ErrorCodeJobRunning, "job is already running")
	ErrUnauthorized       = NewAPIError(http.StatusUnauthorized, ErrorCodeUnauthorized, "authentication required")
	ErrInsufficientScope  = NewAPIError(http.StatusForbidden, ErrorCodeInsufficientScope, "missing required scope")
	ErrRateLimited        = NewAPIError(http.StatusTooManyRequests, ErrorCodeRateLimitExceeded, "too many requests")
	ErrServerError        = NewAPIError(http.StatusInternalServerError, ErrorCodeServerError, "internal server error")
)

// parseErrorResponse turns a failed response body into an *APIError. Bodies
// that are not the expected shape still produce one, coded server_error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}
