package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/store/drivers/sqlite/gen"
)

type tokensRepo struct {
	q *gen.Queries
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.InvitationToken) error {
	err := r.q.CreateToken(ctx, gen.CreateTokenParams{
		ID:            t.ID,
		TokenHash:     t.TokenHash,
		IssuedBy:      t.IssuedBy,
		IssuedAt:      toMillis(t.IssuedAt),
		DurationHours: int64(t.DurationHours),
		ExpiresAt:     toMillis(t.ExpiresAt),
	})
	return mapUnique(err)
}

func (r *tokensRepo) GetTokenByHash(ctx context.Context, tokenHash string) (domain.InvitationToken, error) {
	row, err := r.q.GetTokenByHash(ctx, tokenHash)
	if err != nil {
		return domain.InvitationToken{}, mapNotFound(err)
	}
	return mapToken(row), nil
}

func (r *tokensRepo) ConsumeToken(
	ctx context.Context,
	tokenHash string,
	userID int64,
	now time.Time,
) (domain.InvitationToken, error) {
	row, err := r.q.ConsumeToken(ctx, gen.ConsumeTokenParams{
		UsedBy:    mapInt64Null(userID),
		UsedAt:    mapMillisNull(now),
		TokenHash: tokenHash,
		ExpiresAt: toMillis(now),
	})
	if err != nil {
		return domain.InvitationToken{}, mapNotFound(err)
	}
	return mapToken(row), nil
}

func mapToken(row gen.InvitationToken) domain.InvitationToken {
	return domain.InvitationToken{
		ID:            row.ID,
		TokenHash:     row.TokenHash,
		IssuedBy:      row.IssuedBy,
		IssuedAt:      fromMillis(row.IssuedAt),
		DurationHours: int(row.DurationHours),
		ExpiresAt:     fromMillis(row.ExpiresAt),
		Used:          row.Used != 0,
		UsedBy:        mapNullInt64(row.UsedBy),
		UsedAt:        mapNullMillisPtr(row.UsedAt),
	}
}
