package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
)

// Error kinds. Every *Error unwraps to exactly one of these so callers can
// branch on the kind with errors.Is without knowing the concrete error.
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrExpired    = errors.New("expired")
)

// Error is a typed engine error. Code is a stable machine readable identifier
// that the HTTP layer returns verbatim.
type Error struct {
	Kind error
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Is matches any *Error with the same Code, so errors built with details
// (see validationf) still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidDuration  = &Error{Kind: ErrValidation, Code: "invalid_duration", Msg: "duration must be between 1 hour and 10 years"}
	ErrInvalidUserID    = &Error{Kind: ErrValidation, Code: "invalid_user_id", Msg: "user id must be positive"}
	ErrInvalidWaitTime  = &Error{Kind: ErrValidation, Code: "invalid_wait_time", Msg: "wait time must be between 1 minute and 1 year"}
	ErrInvalidSetting   = &Error{Kind: ErrValidation, Code: "invalid_setting", Msg: "invalid setting"}
	ErrTokenNotFound    = &Error{Kind: ErrNotFound, Code: "token_not_found", Msg: "token not found"}
	ErrTokenAlreadyUsed = &Error{Kind: ErrConflict, Code: "token_already_used", Msg: "token has already been used"}
	ErrTokenExpired     = &Error{Kind: ErrExpired, Code: "token_expired", Msg: "token has expired"}

	ErrMembershipNotFound = &Error{Kind: ErrNotFound, Code: "membership_not_found", Msg: "no active membership"}
	ErrMembershipActive   = &Error{Kind: ErrConflict, Code: "membership_active", Msg: "user already has an active membership"}
	ErrRequestNotFound    = &Error{Kind: ErrNotFound, Code: "request_not_found", Msg: "no pending access request"}

	ErrUnknownJob = &Error{Kind: ErrNotFound, Code: "unknown_job", Msg: "unknown job"}
	ErrJobRunning = &Error{Kind: ErrConflict, Code: "job_running", Msg: "job is already running"}
)

// ErrStopTimeout is returned by Scheduler.Stop when running jobs did not
// finish inside the stop timeout.
var ErrStopTimeout = errors.New("scheduler: timed out waiting for running jobs")

func checkDurationHours(h int) error {
	if h < 1 || h > domain.MaxDurationHours {
		return ErrInvalidDuration
	}
	return nil
}

func checkWaitMinutes(m int) error {
	if m < 1 || m > domain.MaxWaitTimeMinutes {
		return ErrInvalidWaitTime
	}
	return nil
}

func validationf(base *Error, format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Code: base.Code, Msg: fmt.Sprintf(format, args...)}
}

// Code returns the machine readable code of err, or "" when err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
