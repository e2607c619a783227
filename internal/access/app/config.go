package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/pkg/jwtx"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"ACCESS_DATABASE_FILE" envDefault:"access.db"`
	JWTSecret    string `env:"ACCESS_JWT_SECRET"`
	JWTIssuer    string `env:"ACCESS_JWT_ISSUER"    envDefault:"lounge-access"`

	// Engine defaults; persisted settings override the first three.
	WaitTimeMinutes            int `env:"ACCESS_WAIT_TIME_MINUTES"             envDefault:"5"`
	DefaultTokenDurationHours  int `env:"ACCESS_DEFAULT_TOKEN_DURATION_HOURS"  envDefault:"24"`
	TokenLength                int `env:"ACCESS_TOKEN_LENGTH"                  envDefault:"16"`
	ExpirySweepIntervalMinutes int `env:"ACCESS_EXPIRY_SWEEP_INTERVAL_MINUTES" envDefault:"60"`
	QueueSweepIntervalMinutes  int `env:"ACCESS_QUEUE_SWEEP_INTERVAL_MINUTES"  envDefault:"5"`

	CleanupSchedule   string        `env:"ACCESS_CLEANUP_SCHEDULE"      envDefault:"0 3 * * *"`
	RetentionDays     int           `env:"ACCESS_RETENTION_DAYS"        envDefault:"30"`
	SchedulerTimezone string        `env:"ACCESS_SCHEDULER_TIMEZONE"    envDefault:"UTC"`
	JobStopTimeout    time.Duration `env:"ACCESS_JOB_STOP_TIMEOUT"      envDefault:"30s"`
	RunOnStart        bool          `env:"ACCESS_SCHEDULER_RUN_ON_START" envDefault:"true"`

	RedeemPolicy          string `env:"ACCESS_REDEEM_POLICY"            envDefault:"extend"`
	AdmissionMode         string `env:"ACCESS_ADMISSION_MODE"           envDefault:"link"`
	InviteLinkExpireHours int    `env:"ACCESS_INVITE_LINK_EXPIRE_HOURS" envDefault:"24"`
	PremiumChannelID      int64  `env:"ACCESS_PREMIUM_CHANNEL_ID"       envDefault:"0"`
	FreeChannelID         int64  `env:"ACCESS_FREE_CHANNEL_ID"          envDefault:"0"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAPIURL   string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

const maxRetentionDays = 3650

// Validate checks the values env parsing cannot.
func (c Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < jwtx.MinSecretSize {
		errs = append(errs, fmt.Errorf("ACCESS_JWT_SECRET must be at least %d bytes", jwtx.MinSecretSize))
	}
	if err := c.Engine().Validate(); err != nil {
		errs = append(errs, err)
	}

	switch domain.RedeemPolicy(c.RedeemPolicy) {
	case domain.RedeemExtend, domain.RedeemReject:
	default:
		errs = append(errs, fmt.Errorf("ACCESS_REDEEM_POLICY must be extend or reject, got %q", c.RedeemPolicy))
	}
	switch domain.AdmissionMode(c.AdmissionMode) {
	case domain.AdmissionLink, domain.AdmissionApprove:
	default:
		errs = append(errs, fmt.Errorf("ACCESS_ADMISSION_MODE must be link or approve, got %q", c.AdmissionMode))
	}

	if _, err := cron.ParseStandard(c.CleanupSchedule); err != nil {
		errs = append(errs, fmt.Errorf("ACCESS_CLEANUP_SCHEDULE: %w", err))
	}
	if _, err := time.LoadLocation(c.SchedulerTimezone); err != nil {
		errs = append(errs, fmt.Errorf("ACCESS_SCHEDULER_TIMEZONE: %w", err))
	}
	if c.RetentionDays < 1 || c.RetentionDays > maxRetentionDays {
		errs = append(errs, fmt.Errorf("ACCESS_RETENTION_DAYS must be between 1 and %d, got %d",
			maxRetentionDays, c.RetentionDays))
	}
	if c.JobStopTimeout <= 0 {
		errs = append(errs, errors.New("ACCESS_JOB_STOP_TIMEOUT must be positive"))
	}
	if c.InviteLinkExpireHours < 1 || c.InviteLinkExpireHours > domain.MaxDurationHours {
		errs = append(errs, fmt.Errorf("ACCESS_INVITE_LINK_EXPIRE_HOURS must be between 1 and %d, got %d",
			domain.MaxDurationHours, c.InviteLinkExpireHours))
	}

	// The telegram gateway acts on real channels, so both must be known.
	if c.TelegramBotToken != "" {
		if c.PremiumChannelID == 0 {
			errs = append(errs, errors.New("ACCESS_PREMIUM_CHANNEL_ID is required when TELEGRAM_BOT_TOKEN is set"))
		}
		if c.FreeChannelID == 0 {
			errs = append(errs, errors.New("ACCESS_FREE_CHANNEL_ID is required when TELEGRAM_BOT_TOKEN is set"))
		}
	}

	return errors.Join(errs...)
}

// Engine returns the engine defaults carried by the config.
func (c Config) Engine() domain.EngineConfig {
	return domain.EngineConfig{
		WaitTimeMinutes:            c.WaitTimeMinutes,
		DefaultTokenDurationHours:  c.DefaultTokenDurationHours,
		TokenLength:                c.TokenLength,
		ExpirySweepIntervalMinutes: c.ExpirySweepIntervalMinutes,
		QueueSweepIntervalMinutes:  c.QueueSweepIntervalMinutes,
	}
}
