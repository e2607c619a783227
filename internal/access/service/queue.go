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

// QueueService is the free-tier admission queue.
type QueueService struct {
	Store store.Store
	Now   func() time.Time
}

// Enqueue files a request for userID. A user with a pending request gets that
// request back with created=false instead of a second one.
func (s *QueueService) Enqueue(ctx context.Context, userID int64) (domain.FreeAccessRequest, bool, error) {
	log := slogx.FromContext(ctx)

	if userID <= 0 {
		return domain.FreeAccessRequest{}, false, ErrInvalidUserID
	}

	existing, err := s.Store.Requests().GetPendingRequest(ctx, userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.FreeAccessRequest{}, false, fmt.Errorf("get pending request: %w", err)
	}

	req := domain.FreeAccessRequest{
		ID:          idx.New().String(),
		UserID:      userID,
		RequestedAt: s.now(),
	}
	if err := s.Store.Requests().CreateRequest(ctx, req); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race against a concurrent enqueue for the same user.
			winner, err := s.Store.Requests().GetPendingRequest(ctx, userID)
			if err != nil {
				return domain.FreeAccessRequest{}, false, fmt.Errorf("get pending request: %w", err)
			}
			return winner, false, nil
		}
		log.Error("failed to enqueue request",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return domain.FreeAccessRequest{}, false, fmt.Errorf("create request: %w", err)
	}

	log.Info("access request queued",
		slog.Int64("user_id", userID),
		slog.String("request_id", req.ID),
	)
	return req, true, nil
}

// GetPending returns the user's unprocessed request.
func (s *QueueService) GetPending(ctx context.Context, userID int64) (domain.FreeAccessRequest, error) {
	req, err := s.Store.Requests().GetPendingRequest(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.FreeAccessRequest{}, ErrRequestNotFound
		}
		return domain.FreeAccessRequest{}, fmt.Errorf("get pending request: %w", err)
	}
	return req, nil
}

// RemainingWait returns the whole minutes, rounded up, until the user's
// pending request clears a wait window of waitMinutes. Zero means ready.
func (s *QueueService) RemainingWait(ctx context.Context, userID int64, waitMinutes int) (int, error) {
	if err := checkWaitMinutes(waitMinutes); err != nil {
		return 0, err
	}
	req, err := s.GetPending(ctx, userID)
	if err != nil {
		return 0, err
	}
	return RemainingMinutes(req, waitMinutes, s.now()), nil
}

// RemainingMinutes is max(0, ceil(readyAt - now)) in minutes.
func RemainingMinutes(req domain.FreeAccessRequest, waitMinutes int, now time.Time) int {
	left := req.ReadyAt(waitMinutes).Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Minute - 1) / time.Minute)
}

// ReadySweep marks every pending request that has waited at least
// waitMinutes by now as processed and returns them oldest first.
func (s *QueueService) ReadySweep(ctx context.Context, now time.Time, waitMinutes int) ([]domain.FreeAccessRequest, error) {
	if err := checkWaitMinutes(waitMinutes); err != nil {
		return nil, err
	}
	now = now.UTC()
	readyBefore := now.Add(-time.Duration(waitMinutes) * time.Minute)

	ready, err := s.Store.Requests().ProcessReadyRequests(ctx, readyBefore, now)
	if err != nil {
		return nil, fmt.Errorf("process ready requests: %w", err)
	}
	return ready, nil
}

// PurgeProcessed deletes processed requests processed before cutoff.
func (s *QueueService) PurgeProcessed(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.Store.Requests().DeleteProcessedRequests(ctx, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete processed requests: %w", err)
	}
	return n, nil
}

func (s *QueueService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
