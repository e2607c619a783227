package domain

import "time"

// FreeAccessRequest is a queued request for free-tier admission. It becomes
// eligible once WaitTimeMinutes have elapsed since RequestedAt.
type FreeAccessRequest struct {
	ID          string
	UserID      int64
	RequestedAt time.Time
	Processed   bool
	ProcessedAt *time.Time
}

// ReadyAt is when the request clears a wait window of waitMinutes.
func (r FreeAccessRequest) ReadyAt(waitMinutes int) time.Time {
	return r.RequestedAt.Add(time.Duration(waitMinutes) * time.Minute)
}

// AdmissionMode selects how a ready request is realised on the channel.
type AdmissionMode string

const (
	// AdmissionLink sends the user a one-time invite link.
	AdmissionLink AdmissionMode = "link"
	// AdmissionApprove approves the user's pending join request.
	AdmissionApprove AdmissionMode = "approve"
)
