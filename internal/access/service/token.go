package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/store"
	"github.com/aussiebroadwan/lounge/pkg/cryptox"
	"github.com/aussiebroadwan/lounge/pkg/idx"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
)

// maxGenerateAttempts bounds retries on token string collisions.
const maxGenerateAttempts = 5

var ErrTokenGeneration = errors.New("could not generate a unique token")

// TokenService issues, validates and redeems invitation tokens.
type TokenService struct {
	Store    store.Store
	Settings *SettingsService
	Ledger   *LedgerService
	Now      func() time.Time
}

// Generate mints a token valid for durationHours from now. The same duration
// is granted as membership when the token is redeemed.
func (s *TokenService) Generate(
	ctx context.Context,
	issuedBy string,
	durationHours int,
) (domain.InvitationToken, error) {
	log := slogx.FromContext(ctx)

	if err := checkDurationHours(durationHours); err != nil {
		return domain.InvitationToken{}, err
	}

	length := s.Settings.Get().TokenLength
	now := s.now()

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		value, err := cryptox.GenerateAlphanumeric(length)
		if err != nil {
			log.Error("failed to generate token", slog.Any("error", err))
			return domain.InvitationToken{}, err
		}

		tok := domain.InvitationToken{
			ID:            idx.New().String(),
			Token:         value,
			TokenHash:     cryptox.FingerprintToken(value),
			IssuedBy:      issuedBy,
			IssuedAt:      now,
			DurationHours: durationHours,
			ExpiresAt:     now.Add(time.Duration(durationHours) * time.Hour),
		}

		err = s.Store.Tokens().CreateToken(ctx, tok)
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("token collision, retrying", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			log.Error("failed to store token", slog.Any("error", err))
			return domain.InvitationToken{}, fmt.Errorf("create token: %w", err)
		}

		log.Info("token generated",
			slog.String("token_id", tok.ID),
			slog.String("token_fp", tok.TokenHash),
			slog.String("issued_by", issuedBy),
			slog.Int("duration_hours", durationHours),
			slog.Time("expires_at", tok.ExpiresAt),
		)
		return tok, nil
	}

	return domain.InvitationToken{}, ErrTokenGeneration
}

// Validate reports the redemption status of token. It never writes.
func (s *TokenService) Validate(ctx context.Context, token string) (domain.TokenStatus, error) {
	tok, err := s.Store.Tokens().GetTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenNotFound, nil
		}
		return "", fmt.Errorf("get token: %w", err)
	}
	return tok.Status(s.now()), nil
}

// Get returns the stored token. The raw value is not stored, so Token is empty.
func (s *TokenService) Get(ctx context.Context, token string) (domain.InvitationToken, error) {
	tok, err := s.Store.Tokens().GetTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InvitationToken{}, ErrTokenNotFound
		}
		return domain.InvitationToken{}, fmt.Errorf("get token: %w", err)
	}
	return tok, nil
}

// Redeem consumes token for userID and creates or extends the user's
// membership in the same transaction. The first write is a guarded update,
// so of any number of concurrent redemptions exactly one succeeds.
func (s *TokenService) Redeem(ctx context.Context, token string, userID int64) (domain.PremiumMembership, error) {
	log := slogx.FromContext(ctx)

	if userID <= 0 {
		return domain.PremiumMembership{}, ErrInvalidUserID
	}

	now := s.now()
	fp := cryptox.FingerprintToken(token)

	var m domain.PremiumMembership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		tok, err := tx.Tokens().ConsumeToken(ctx, fp, userID, now)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return classifyUnredeemable(ctx, tx, fp, now)
			}
			return fmt.Errorf("consume token: %w", err)
		}

		m, err = s.Ledger.createInTx(ctx, tx, userID, tok.ID, tok.DurationHours, now)
		return err
	})
	if err != nil {
		var typed *Error
		if errors.As(err, &typed) {
			log.Warn("token redemption refused",
				slog.String("token_fp", fp),
				slog.Int64("user_id", userID),
				slog.String("reason", typed.Code),
			)
		} else {
			log.Error("token redemption failed",
				slog.String("token_fp", fp),
				slog.Int64("user_id", userID),
				slog.Any("error", err),
			)
		}
		return domain.PremiumMembership{}, err
	}

	log.Info("token redeemed",
		slog.String("token_fp", fp),
		slog.Int64("user_id", userID),
		slog.String("membership_id", m.ID),
	)
	return m, nil
}

// classifyUnredeemable explains why the guarded update matched nothing.
func classifyUnredeemable(ctx context.Context, tx store.Tx, tokenHash string, now time.Time) error {
	tok, err := tx.Tokens().GetTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("get token: %w", err)
	}
	switch tok.Status(now) {
	case domain.TokenExpired:
		return ErrTokenExpired
	default:
		return ErrTokenAlreadyUsed
	}
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
