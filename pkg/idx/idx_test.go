package idx_test

import (
	"sort"
	"testing"
	"time"

	"github.com/aussiebroadwan/lounge/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestNewAtEmbedsTime(t *testing.T) {
	tm := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	id := idx.NewAt(tm)

	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
}

func TestIDsSortByCreation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Same millisecond for the first three so the monotonic entropy matters.
	ids := []string{
		idx.NewAt(base).String(),
		idx.NewAt(base).String(),
		idx.NewAt(base).String(),
		idx.NewAt(base.Add(time.Second)).String(),
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	require.Equal(t, ids, sorted)
}
