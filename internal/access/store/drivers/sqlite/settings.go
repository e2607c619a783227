package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/store/drivers/sqlite/gen"
)

type settingsRepo struct {
	q *gen.Queries
}

func (r *settingsRepo) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.q.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *settingsRepo) PutSetting(ctx context.Context, key, value string, now time.Time) error {
	return r.q.PutSetting(ctx, gen.PutSettingParams{
		Key:       key,
		Value:     value,
		UpdatedAt: toMillis(now),
	})
}
