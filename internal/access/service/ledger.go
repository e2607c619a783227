package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/store"
	"github.com/aussiebroadwan/lounge/pkg/idx"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
)

// LedgerService owns premium memberships. It is the only writer of the
// membership status column.
type LedgerService struct {
	Store  store.Store
	Policy domain.RedeemPolicy
	Now    func() time.Time
}

// CreateFromRedemption records a membership of durationHours for userID,
// sourced from tokenID. A user with an active row has it extended instead
// (or refused, under RedeemReject).
func (s *LedgerService) CreateFromRedemption(
	ctx context.Context,
	userID int64,
	tokenID string,
	durationHours int,
) (domain.PremiumMembership, error) {
	now := s.now()

	var m domain.PremiumMembership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		m, err = s.createInTx(ctx, tx, userID, tokenID, durationHours, now)
		return err
	})
	if err != nil {
		return domain.PremiumMembership{}, err
	}
	return m, nil
}

// createInTx does the work of CreateFromRedemption against an open
// transaction so a token redemption can share it.
func (s *LedgerService) createInTx(
	ctx context.Context,
	tx store.Tx,
	userID int64,
	tokenID string,
	durationHours int,
	now time.Time,
) (domain.PremiumMembership, error) {
	log := slogx.FromContext(ctx)

	if err := checkDurationHours(durationHours); err != nil {
		return domain.PremiumMembership{}, err
	}
	if userID <= 0 {
		return domain.PremiumMembership{}, ErrInvalidUserID
	}
	d := time.Duration(durationHours) * time.Hour

	current, err := tx.Memberships().GetActiveMembership(ctx, userID)
	switch {
	case err == nil:
		if s.policy() == domain.RedeemReject && current.ActiveAt(now) {
			log.Warn("redemption refused, membership still active",
				slog.Int64("user_id", userID),
				slog.String("membership_id", current.ID),
				slog.Time("expires_at", current.ExpiresAt),
			)
			return domain.PremiumMembership{}, ErrMembershipActive
		}

		// A row the sweep has not reached yet is extended from now.
		base := current.ExpiresAt
		if base.Before(now) {
			base = now
		}
		m, err := tx.Memberships().ExtendActiveMembership(ctx, userID, tokenID, base.Add(d), now)
		if err != nil {
			return domain.PremiumMembership{}, fmt.Errorf("extend membership: %w", err)
		}
		log.Info("membership extended",
			slog.Int64("user_id", userID),
			slog.String("membership_id", m.ID),
			slog.String("token_id", tokenID),
			slog.Time("expires_at", m.ExpiresAt),
		)
		return m, nil

	case errors.Is(err, store.ErrNotFound):
		m := domain.PremiumMembership{
			ID:            idx.New().String(),
			UserID:        userID,
			SourceTokenID: tokenID,
			JoinedAt:      now,
			ExpiresAt:     now.Add(d),
			Status:        domain.MembershipActive,
			UpdatedAt:     now,
		}
		if err := tx.Memberships().CreateMembership(ctx, m); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.PremiumMembership{}, ErrMembershipActive
			}
			return domain.PremiumMembership{}, fmt.Errorf("create membership: %w", err)
		}
		log.Info("membership created",
			slog.Int64("user_id", userID),
			slog.String("membership_id", m.ID),
			slog.String("token_id", tokenID),
			slog.Time("expires_at", m.ExpiresAt),
		)
		return m, nil

	default:
		return domain.PremiumMembership{}, fmt.Errorf("get active membership: %w", err)
	}
}

// GetActive returns the user's membership when it grants access right now.
func (s *LedgerService) GetActive(ctx context.Context, userID int64) (domain.PremiumMembership, error) {
	m, err := s.Store.Memberships().GetActiveMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PremiumMembership{}, ErrMembershipNotFound
		}
		return domain.PremiumMembership{}, fmt.Errorf("get active membership: %w", err)
	}
	if !m.ActiveAt(s.now()) {
		return domain.PremiumMembership{}, ErrMembershipNotFound
	}
	return m, nil
}

// Renew pushes the expiry of an unexpired active membership out by extraHours.
func (s *LedgerService) Renew(ctx context.Context, userID int64, extraHours int) (domain.PremiumMembership, error) {
	log := slogx.FromContext(ctx)

	if err := checkDurationHours(extraHours); err != nil {
		return domain.PremiumMembership{}, err
	}

	m, err := s.Store.Memberships().RenewMembership(ctx, userID, time.Duration(extraHours)*time.Hour, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PremiumMembership{}, ErrMembershipNotFound
		}
		log.Error("failed to renew membership",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return domain.PremiumMembership{}, fmt.Errorf("renew membership: %w", err)
	}

	log.Info("membership renewed",
		slog.Int64("user_id", userID),
		slog.String("membership_id", m.ID),
		slog.Int("extra_hours", extraHours),
		slog.Time("expires_at", m.ExpiresAt),
	)
	return m, nil
}

// ExpireSweep flips every active membership whose expiry is at or before now
// and returns the flipped rows ordered by expiry. A second call with the same
// now returns nothing.
func (s *LedgerService) ExpireSweep(ctx context.Context, now time.Time) ([]domain.PremiumMembership, error) {
	expired, err := s.Store.Memberships().ExpireMemberships(ctx, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("expire memberships: %w", err)
	}
	return expired, nil
}

func (s *LedgerService) policy() domain.RedeemPolicy {
	if s.Policy == "" {
		return domain.RedeemExtend
	}
	return s.Policy
}

func (s *LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
