package accesssdk

import "time"

// ============================================================================
// Tokens
// ============================================================================

// GenerateTokenRequest asks for a new invitation token. A zero DurationHours
// uses the service default.
type GenerateTokenRequest struct {
	DurationHours int `json:"duration_hours,omitempty"`
}

// TokenResponse describes an invitation token. Token is only meaningful to
// admins; Status is one of valid, already_used, expired or not_found.
type TokenResponse struct {
	ID            string     `json:"id,omitempty"`
	Token         string     `json:"token"`
	Status        string     `json:"status"`
	IssuedBy      string     `json:"issued_by,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	DurationHours int        `json:"duration_hours,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	UsedBy        int64      `json:"used_by,omitempty"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
}

type RedeemTokenRequest struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// ============================================================================
// Memberships
// ============================================================================

type MembershipResponse struct {
	ID            string     `json:"id"`
	UserID        int64      `json:"user_id"`
	SourceTokenID string     `json:"source_token_id"`
	JoinedAt      time.Time  `json:"joined_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	Status        string     `json:"status"`
	ExpiredAt     *time.Time `json:"expired_at,omitempty"`
}

type RenewMembershipRequest struct {
	ExtraHours int `json:"extra_hours"`
}

// ============================================================================
// Queue
// ============================================================================

type EnqueueRequest struct {
	UserID int64 `json:"user_id"`
}

// QueueStatusResponse describes a pending free access request. Created is
// true only on the enqueue call that filed it.
type QueueStatusResponse struct {
	RequestID        string    `json:"request_id"`
	UserID           int64     `json:"user_id"`
	RequestedAt      time.Time `json:"requested_at"`
	WaitTimeMinutes  int       `json:"wait_time_minutes"`
	RemainingMinutes int       `json:"remaining_minutes"`
	Created          bool      `json:"created"`
}

// ============================================================================
// Jobs
// ============================================================================

type JobReport struct {
	Job        string    `json:"job"`
	RunID      string    `json:"run_id"`
	Trigger    string    `json:"trigger"`
	Selected   int       `json:"selected"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

type JobStatus struct {
	Name     string     `json:"name"`
	State    string     `json:"state"`
	Schedule string     `json:"schedule"`
	NextRun  *time.Time `json:"next_run,omitempty"`
	LastRun  *JobReport `json:"last_run,omitempty"`
}

type JobsResponse struct {
	Jobs []JobStatus `json:"jobs"`
}

// ============================================================================
// Settings
// ============================================================================

type Settings struct {
	WaitTimeMinutes            int `json:"wait_time_minutes"`
	DefaultTokenDurationHours  int `json:"default_token_duration_hours"`
	TokenLength                int `json:"token_length"`
	ExpirySweepIntervalMinutes int `json:"expiry_sweep_interval_minutes"`
	QueueSweepIntervalMinutes  int `json:"queue_sweep_interval_minutes"`
}

// UpdateSettingsRequest changes the non-nil fields together.
type UpdateSettingsRequest struct {
	WaitTimeMinutes           *int `json:"wait_time_minutes,omitempty"`
	DefaultTokenDurationHours *int `json:"default_token_duration_hours,omitempty"`
	TokenLength               *int `json:"token_length,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database  string `json:"database"`
	Scheduler string `json:"scheduler"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
