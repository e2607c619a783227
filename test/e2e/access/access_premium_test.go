package access_test

import (
	"sync"
	"testing"

	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/stretchr/testify/require"
)

// TestPremiumFlow generates a token, redeems it and checks it cannot be
// redeemed twice.
func TestPremiumFlow(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	admin := adminClient(t, baseURL)
	member := memberClient(t, baseURL)
	ctx := t.Context()

	tok, err := admin.GenerateToken(ctx, accesssdk.GenerateTokenRequest{DurationHours: 24})
	require.NoError(t, err)
	require.Equal(t, "valid", tok.Status)
	require.Equal(t, "e2e-admin", tok.IssuedBy)

	m, err := member.RedeemToken(ctx, accesssdk.RedeemTokenRequest{Token: tok.Token, UserID: 1001})
	require.NoError(t, err)
	require.Equal(t, "active", m.Status)
	require.Equal(t, tok.ID, m.SourceTokenID)

	_, err = member.RedeemToken(ctx, accesssdk.RedeemTokenRequest{Token: tok.Token, UserID: 1002})
	require.ErrorIs(t, err, accesssdk.ErrTokenAlreadyUsed)

	status, err := admin.ValidateToken(ctx, tok.Token)
	require.NoError(t, err)
	require.Equal(t, "already_used", status.Status)
	require.Equal(t, int64(1001), status.UsedBy)
}

// TestConcurrentRedeemSucceedsOnce fires parallel redemptions of one token.
func TestConcurrentRedeemSucceedsOnce(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	admin := adminClient(t, baseURL)
	member := memberClient(t, baseURL)
	ctx := t.Context()

	tok, err := admin.GenerateToken(ctx, accesssdk.GenerateTokenRequest{})
	require.NoError(t, err)

	const callers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		used      int
	)
	for i := range callers {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			_, err := member.RedeemToken(ctx, accesssdk.RedeemTokenRequest{Token: tok.Token, UserID: user})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case accesssdk.ErrTokenAlreadyUsed.Is(err):
				used++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(2000 + i))
	}
	wg.Wait()

	require.Equal(t, 1, succeeded)
	require.Equal(t, callers-1, used)
}

// TestScopeEnforcement checks members cannot mint tokens.
func TestScopeEnforcement(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	_, err := memberClient(t, baseURL).GenerateToken(t.Context(), accesssdk.GenerateTokenRequest{})
	require.ErrorIs(t, err, accesssdk.ErrInsufficientScope)

	_, err = accesssdk.NewClient(baseURL, "").GenerateToken(t.Context(), accesssdk.GenerateTokenRequest{})
	require.ErrorIs(t, err, accesssdk.ErrUnauthorized)
}
