package domain

import "fmt"

// Setting keys persisted in the engine_settings table.
const (
	SettingWaitTimeMinutes           = "wait_time_minutes"
	SettingDefaultTokenDurationHours = "default_token_duration_hours"
	SettingTokenLength               = "token_length"
)

// Token length bounds enforced by the settings setters.
const (
	MinTokenLength = 8
	MaxTokenLength = 64
)

// Upper bounds for wait windows and durations. They keep minute and hour
// arithmetic far inside the range of time.Duration.
const (
	MaxWaitTimeMinutes = 365 * 24 * 60 // one year
	MaxDurationHours   = 10 * 365 * 24 // ten years
)

// EngineConfig holds the tunables every engine component reads.
type EngineConfig struct {
	WaitTimeMinutes            int `json:"wait_time_minutes"`
	DefaultTokenDurationHours  int `json:"default_token_duration_hours"`
	TokenLength                int `json:"token_length"`
	ExpirySweepIntervalMinutes int `json:"expiry_sweep_interval_minutes"`
	QueueSweepIntervalMinutes  int `json:"queue_sweep_interval_minutes"`
}

// Validate checks every field against its bounds.
func (c EngineConfig) Validate() error {
	if c.WaitTimeMinutes < 1 || c.WaitTimeMinutes > MaxWaitTimeMinutes {
		return fmt.Errorf("wait_time_minutes must be between 1 and %d, got %d",
			MaxWaitTimeMinutes, c.WaitTimeMinutes)
	}
	if c.DefaultTokenDurationHours < 1 || c.DefaultTokenDurationHours > MaxDurationHours {
		return fmt.Errorf("default_token_duration_hours must be between 1 and %d, got %d",
			MaxDurationHours, c.DefaultTokenDurationHours)
	}
	if c.TokenLength < MinTokenLength || c.TokenLength > MaxTokenLength {
		return fmt.Errorf("token_length must be between %d and %d, got %d",
			MinTokenLength, MaxTokenLength, c.TokenLength)
	}
	if c.ExpirySweepIntervalMinutes < 1 {
		return fmt.Errorf("expiry_sweep_interval_minutes must be >= 1, got %d", c.ExpirySweepIntervalMinutes)
	}
	if c.QueueSweepIntervalMinutes < 1 {
		return fmt.Errorf("queue_sweep_interval_minutes must be >= 1, got %d", c.QueueSweepIntervalMinutes)
	}
	return nil
}
