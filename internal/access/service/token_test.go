package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	t.Run("rejects durations under one hour", func(t *testing.T) {
		_, err := e.tokens.Generate(ctx, "admin", 0)
		require.ErrorIs(t, err, ErrInvalidDuration)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects durations past the upper bound", func(t *testing.T) {
		_, err := e.tokens.Generate(ctx, "admin", domain.MaxDurationHours+1)
		require.ErrorIs(t, err, ErrInvalidDuration)

		_, err = e.tokens.Generate(ctx, "admin", 3_000_000)
		require.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("longest duration stays valid", func(t *testing.T) {
		tok, err := e.tokens.Generate(ctx, "admin", domain.MaxDurationHours)
		require.NoError(t, err)
		require.True(t, tok.ExpiresAt.After(t0))
		require.Equal(t, domain.TokenValid, tok.Status(t0))
	})

	t.Run("uses configured length and window", func(t *testing.T) {
		require.NoError(t, e.settings.SetTokenLength(ctx, 24))

		tok, err := e.tokens.Generate(ctx, "admin", 12)
		require.NoError(t, err)
		require.Len(t, tok.Token, 24)
		require.Equal(t, "admin", tok.IssuedBy)
		require.True(t, tok.ExpiresAt.Equal(t0.Add(12*time.Hour)))
		require.False(t, tok.Used)
	})

	t.Run("only the fingerprint is stored", func(t *testing.T) {
		tok, err := e.tokens.Generate(ctx, "admin", 6)
		require.NoError(t, err)
		require.Equal(t, cryptox.FingerprintToken(tok.Token), tok.TokenHash)

		stored, err := e.store.Tokens().GetTokenByHash(ctx, tok.TokenHash)
		require.NoError(t, err)
		require.Equal(t, tok.ID, stored.ID)
		require.Empty(t, stored.Token)

		got, err := e.tokens.Get(ctx, tok.Token)
		require.NoError(t, err)
		require.Equal(t, tok.ID, got.ID)

		_, err = e.tokens.Get(ctx, tok.TokenHash)
		require.ErrorIs(t, err, ErrTokenNotFound, "the fingerprint is not itself a token")
	})

	t.Run("tokens are distinct", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			tok, err := e.tokens.Generate(ctx, "admin", 1)
			require.NoError(t, err)
			require.False(t, seen[tok.Token])
			seen[tok.Token] = true
		}
	})
}

func TestValidateTokenWindow(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	tok, err := e.tokens.Generate(ctx, "admin", 24)
	require.NoError(t, err)

	e.clock.Set(t0.Add(23*time.Hour + 59*time.Minute))
	status, err := e.tokens.Validate(ctx, tok.Token)
	require.NoError(t, err)
	require.Equal(t, domain.TokenValid, status)

	e.clock.Set(t0.Add(24*time.Hour + time.Second))
	status, err = e.tokens.Validate(ctx, tok.Token)
	require.NoError(t, err)
	require.Equal(t, domain.TokenExpired, status)

	status, err = e.tokens.Validate(ctx, "doesNotExist1234")
	require.NoError(t, err)
	require.Equal(t, domain.TokenNotFound, status)
}

func TestRedeemConcurrentExactlyOnce(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	tok, err := e.tokens.Generate(ctx, "admin", 24)
	require.NoError(t, err)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			<-start
			_, err := e.tokens.Redeem(ctx, tok.Token, userID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrTokenAlreadyUsed) && errors.Is(err, ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	close(start)
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, callers-1, conflicts)

	status, err := e.tokens.Validate(ctx, tok.Token)
	require.NoError(t, err)
	require.Equal(t, domain.TokenAlreadyUsed, status)
}

func TestRedeemErrors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	t.Run("unknown token", func(t *testing.T) {
		_, err := e.tokens.Redeem(ctx, "doesNotExist1234", 1)
		require.ErrorIs(t, err, ErrTokenNotFound)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := e.tokens.Generate(ctx, "admin", 1)
		require.NoError(t, err)

		e.clock.Set(t0.Add(time.Hour))
		defer e.clock.Set(t0)

		_, err = e.tokens.Redeem(ctx, tok.Token, 1)
		require.ErrorIs(t, err, ErrTokenExpired)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("invalid user", func(t *testing.T) {
		tok, err := e.tokens.Generate(ctx, "admin", 1)
		require.NoError(t, err)

		_, err = e.tokens.Redeem(ctx, tok.Token, 0)
		require.ErrorIs(t, err, ErrInvalidUserID)

		status, err := e.tokens.Validate(ctx, tok.Token)
		require.NoError(t, err)
		require.Equal(t, domain.TokenValid, status)
	})
}

func TestRedeemPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("extend stacks onto the active membership", func(t *testing.T) {
		e := newTestEngine(t)

		first, err := e.tokens.Generate(ctx, "admin", 24)
		require.NoError(t, err)
		second, err := e.tokens.Generate(ctx, "admin", 10)
		require.NoError(t, err)

		m1, err := e.tokens.Redeem(ctx, first.Token, 7)
		require.NoError(t, err)
		require.True(t, m1.ExpiresAt.Equal(t0.Add(24*time.Hour)))

		e.clock.Set(t0.Add(time.Hour))
		m2, err := e.tokens.Redeem(ctx, second.Token, 7)
		require.NoError(t, err)
		require.Equal(t, m1.ID, m2.ID)
		require.True(t, m2.ExpiresAt.Equal(t0.Add(34*time.Hour)))
		require.Equal(t, first.ID, m1.SourceTokenID)
		require.Equal(t, second.ID, m2.SourceTokenID, "the extending token is recorded")
	})

	t.Run("reject refuses and leaves the token unused", func(t *testing.T) {
		e := newTestEngine(t)
		e.ledger.Policy = domain.RedeemReject

		first, err := e.tokens.Generate(ctx, "admin", 24)
		require.NoError(t, err)
		second, err := e.tokens.Generate(ctx, "admin", 24)
		require.NoError(t, err)

		_, err = e.tokens.Redeem(ctx, first.Token, 7)
		require.NoError(t, err)

		_, err = e.tokens.Redeem(ctx, second.Token, 7)
		require.ErrorIs(t, err, ErrMembershipActive)
		require.ErrorIs(t, err, ErrConflict)

		status, err := e.tokens.Validate(ctx, second.Token)
		require.NoError(t, err)
		require.Equal(t, domain.TokenValid, status)

		_, err = e.tokens.Redeem(ctx, second.Token, 8)
		require.NoError(t, err, "another user can still redeem it")
	})
}

func TestPremiumLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	k1, err := e.tokens.Generate(ctx, "admin", 24)
	require.NoError(t, err)

	e.clock.Set(t0.Add(time.Hour))
	m, err := e.tokens.Redeem(ctx, k1.Token, 1001)
	require.NoError(t, err)
	require.True(t, m.ExpiresAt.Equal(t0.Add(25*time.Hour)))
	require.Equal(t, k1.ID, m.SourceTokenID)

	active, err := e.ledger.GetActive(ctx, 1001)
	require.NoError(t, err)
	require.Equal(t, m.ID, active.ID)

	sweepAt := t0.Add(25*time.Hour + time.Second)
	expired, err := e.ledger.ExpireSweep(ctx, sweepAt)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, int64(1001), expired[0].UserID)
	require.Equal(t, domain.MembershipExpired, expired[0].Status)

	again, err := e.ledger.ExpireSweep(ctx, sweepAt)
	require.NoError(t, err)
	require.Empty(t, again)
}
