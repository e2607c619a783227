package sqlite

import (
	"context"
	"sort"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/store/drivers/sqlite/gen"
)

type membershipsRepo struct {
	q *gen.Queries
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.PremiumMembership) error {
	err := r.q.CreateMembership(ctx, gen.CreateMembershipParams{
		ID:            m.ID,
		UserID:        m.UserID,
		SourceTokenID: m.SourceTokenID,
		JoinedAt:      toMillis(m.JoinedAt),
		ExpiresAt:     toMillis(m.ExpiresAt),
		UpdatedAt:     toMillis(m.UpdatedAt),
	})
	return mapUnique(err)
}

func (r *membershipsRepo) GetActiveMembership(ctx context.Context, userID int64) (domain.PremiumMembership, error) {
	row, err := r.q.GetActiveMembership(ctx, userID)
	if err != nil {
		return domain.PremiumMembership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) ExtendActiveMembership(
	ctx context.Context,
	userID int64,
	tokenID string,
	expiresAt, now time.Time,
) (domain.PremiumMembership, error) {
	row, err := r.q.ExtendActiveMembership(ctx, gen.ExtendActiveMembershipParams{
		ExpiresAt:     toMillis(expiresAt),
		SourceTokenID: tokenID,
		UpdatedAt:     toMillis(now),
		UserID:        userID,
	})
	if err != nil {
		return domain.PremiumMembership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) RenewMembership(
	ctx context.Context,
	userID int64,
	extra time.Duration,
	now time.Time,
) (domain.PremiumMembership, error) {
	row, err := r.q.RenewMembership(ctx, gen.RenewMembershipParams{
		ExtraMs: extra.Milliseconds(),
		Now:     toMillis(now),
		UserID:  userID,
	})
	if err != nil {
		return domain.PremiumMembership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) ExpireMemberships(ctx context.Context, now time.Time) ([]domain.PremiumMembership, error) {
	rows, err := r.q.ExpireMemberships(ctx, toMillis(now))
	if err != nil {
		return nil, err
	}

	// RETURNING order is unspecified.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ExpiresAt != rows[j].ExpiresAt {
			return rows[i].ExpiresAt < rows[j].ExpiresAt
		}
		return rows[i].ID < rows[j].ID
	})

	out := make([]domain.PremiumMembership, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMembership(row))
	}
	return out, nil
}

func mapMembership(row gen.PremiumMembership) domain.PremiumMembership {
	return domain.PremiumMembership{
		ID:            row.ID,
		UserID:        row.UserID,
		SourceTokenID: row.SourceTokenID,
		JoinedAt:      fromMillis(row.JoinedAt),
		ExpiresAt:     fromMillis(row.ExpiresAt),
		Status:        domain.MembershipStatus(row.Status),
		ExpiredAt:     mapNullMillisPtr(row.ExpiredAt),
		UpdatedAt:     fromMillis(row.UpdatedAt),
	}
}
