package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/store"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
)

// SettingsService owns the EngineConfig. Reads are served from memory; every
// change is validated, persisted as an override and only then applied.
type SettingsService struct {
	Store store.Store
	Now   func() time.Time

	writeMu sync.Mutex // serialises persist+apply
	mu      sync.RWMutex
	cfg     domain.EngineConfig
}

// SettingsPatch carries the admin-tunable fields; nil fields are left as is.
type SettingsPatch struct {
	WaitTimeMinutes           *int
	DefaultTokenDurationHours *int
	TokenLength               *int
}

func NewSettingsService(st store.Store, defaults domain.EngineConfig) (*SettingsService, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine defaults: %w", err)
	}
	return &SettingsService{Store: st, Now: time.Now, cfg: defaults}, nil
}

// Load applies persisted overrides on top of the defaults. Unknown keys and
// values that fail validation are logged and skipped.
func (s *SettingsService) Load(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	overrides, err := s.Store.Settings().ListSettings(ctx)
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cfg := s.Get()
	for key, raw := range overrides {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("ignoring non-numeric setting override",
				slog.String("key", key),
				slog.String("value", raw),
			)
			continue
		}

		next := cfg
		if !applySetting(&next, key, n) {
			log.Warn("ignoring unknown setting override", slog.String("key", key))
			continue
		}
		if err := next.Validate(); err != nil {
			log.Warn("ignoring invalid setting override",
				slog.String("key", key),
				slog.Any("error", err),
			)
			continue
		}
		cfg = next
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	log.Info("engine settings loaded",
		slog.Int("overrides", len(overrides)),
		slog.Int("wait_time_minutes", cfg.WaitTimeMinutes),
		slog.Int("default_token_duration_hours", cfg.DefaultTokenDurationHours),
		slog.Int("token_length", cfg.TokenLength),
	)
	return nil
}

// Get returns a snapshot of the current configuration.
func (s *SettingsService) Get() domain.EngineConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *SettingsService) SetWaitTimeMinutes(ctx context.Context, n int) error {
	_, err := s.Update(ctx, SettingsPatch{WaitTimeMinutes: &n})
	return err
}

func (s *SettingsService) SetDefaultTokenDurationHours(ctx context.Context, n int) error {
	_, err := s.Update(ctx, SettingsPatch{DefaultTokenDurationHours: &n})
	return err
}

func (s *SettingsService) SetTokenLength(ctx context.Context, n int) error {
	_, err := s.Update(ctx, SettingsPatch{TokenLength: &n})
	return err
}

// Update validates every field in p, persists them in one transaction and
// applies them together. Nothing changes when any field is invalid.
func (s *SettingsService) Update(ctx context.Context, p SettingsPatch) (domain.EngineConfig, error) {
	log := slogx.FromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Get()
	changes := map[string]int{}

	if p.WaitTimeMinutes != nil {
		if n := *p.WaitTimeMinutes; n < 1 || n > domain.MaxWaitTimeMinutes {
			return domain.EngineConfig{}, validationf(ErrInvalidWaitTime,
				"wait_time_minutes must be between 1 and %d, got %d", domain.MaxWaitTimeMinutes, n)
		}
		next.WaitTimeMinutes = *p.WaitTimeMinutes
		changes[domain.SettingWaitTimeMinutes] = *p.WaitTimeMinutes
	}
	if p.DefaultTokenDurationHours != nil {
		if n := *p.DefaultTokenDurationHours; n < 1 || n > domain.MaxDurationHours {
			return domain.EngineConfig{}, validationf(ErrInvalidDuration,
				"default_token_duration_hours must be between 1 and %d, got %d", domain.MaxDurationHours, n)
		}
		next.DefaultTokenDurationHours = *p.DefaultTokenDurationHours
		changes[domain.SettingDefaultTokenDurationHours] = *p.DefaultTokenDurationHours
	}
	if p.TokenLength != nil {
		n := *p.TokenLength
		if n < domain.MinTokenLength || n > domain.MaxTokenLength {
			return domain.EngineConfig{}, validationf(ErrInvalidSetting,
				"token_length must be between %d and %d, got %d",
				domain.MinTokenLength, domain.MaxTokenLength, n)
		}
		next.TokenLength = n
		changes[domain.SettingTokenLength] = n
	}
	if len(changes) == 0 {
		return next, nil
	}
	if err := next.Validate(); err != nil {
		return domain.EngineConfig{}, validationf(ErrInvalidSetting, "%s", err.Error())
	}

	now := s.now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for key, n := range changes {
			if err := tx.Settings().PutSetting(ctx, key, strconv.Itoa(n), now); err != nil {
				return fmt.Errorf("put setting %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to persist settings", slog.Any("error", err))
		return domain.EngineConfig{}, err
	}

	s.mu.Lock()
	s.cfg = next
	s.mu.Unlock()

	for key, n := range changes {
		log.Info("engine setting changed", slog.String("key", key), slog.Int("value", n))
	}
	return next, nil
}

func (s *SettingsService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func applySetting(cfg *domain.EngineConfig, key string, n int) bool {
	switch key {
	case domain.SettingWaitTimeMinutes:
		cfg.WaitTimeMinutes = n
	case domain.SettingDefaultTokenDurationHours:
		cfg.DefaultTokenDurationHours = n
	case domain.SettingTokenLength:
		cfg.TokenLength = n
	default:
		return false
	}
	return true
}
