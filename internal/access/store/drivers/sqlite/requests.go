package sqlite

import (
	"context"
	"sort"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/store/drivers/sqlite/gen"
)

type requestsRepo struct {
	q *gen.Queries
}

func (r *requestsRepo) CreateRequest(ctx context.Context, req domain.FreeAccessRequest) error {
	err := r.q.CreateRequest(ctx, gen.CreateRequestParams{
		ID:          req.ID,
		UserID:      req.UserID,
		RequestedAt: toMillis(req.RequestedAt),
	})
	return mapUnique(err)
}

func (r *requestsRepo) GetPendingRequest(ctx context.Context, userID int64) (domain.FreeAccessRequest, error) {
	row, err := r.q.GetPendingRequest(ctx, userID)
	if err != nil {
		return domain.FreeAccessRequest{}, mapNotFound(err)
	}
	return mapRequest(row), nil
}

func (r *requestsRepo) ProcessReadyRequests(
	ctx context.Context,
	readyBefore, now time.Time,
) ([]domain.FreeAccessRequest, error) {
	rows, err := r.q.ProcessReadyRequests(ctx, gen.ProcessReadyRequestsParams{
		Now:         toMillis(now),
		ReadyBefore: toMillis(readyBefore),
	})
	if err != nil {
		return nil, err
	}

	// FIFO; RETURNING order is unspecified.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RequestedAt != rows[j].RequestedAt {
			return rows[i].RequestedAt < rows[j].RequestedAt
		}
		return rows[i].ID < rows[j].ID
	})

	out := make([]domain.FreeAccessRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRequest(row))
	}
	return out, nil
}

func (r *requestsRepo) DeleteProcessedRequests(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteProcessedRequests(ctx, toMillis(cutoff))
}

func mapRequest(row gen.FreeAccessRequest) domain.FreeAccessRequest {
	return domain.FreeAccessRequest{
		ID:          row.ID,
		UserID:      row.UserID,
		RequestedAt: fromMillis(row.RequestedAt),
		Processed:   row.Processed != 0,
		ProcessedAt: mapNullMillisPtr(row.ProcessedAt),
	}
}
