package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/gateway"
	"github.com/aussiebroadwan/lounge/internal/access/store/drivers/sqlite"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type testEngine struct {
	store    *sqlite.Store
	clock    *testClock
	settings *SettingsService
	ledger   *LedgerService
	tokens   *TokenService
	queue    *QueueService
}

func defaultEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		WaitTimeMinutes:            5,
		DefaultTokenDurationHours:  24,
		TokenLength:                16,
		ExpirySweepIntervalMinutes: 60,
		QueueSweepIntervalMinutes:  5,
	}
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "access.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &testClock{now: t0}

	settings, err := NewSettingsService(st, defaultEngineConfig())
	require.NoError(t, err)
	settings.Now = clock.Now

	ledger := &LedgerService{Store: st, Policy: domain.RedeemExtend, Now: clock.Now}

	return &testEngine{
		store:    st,
		clock:    clock,
		settings: settings,
		ledger:   ledger,
		tokens:   &TokenService{Store: st, Settings: settings, Ledger: ledger, Now: clock.Now},
		queue:    &QueueService{Store: st, Now: clock.Now},
	}
}

func (e *testEngine) newScheduler(t *testing.T, gw gateway.ChannelGateway, cfg SchedulerConfig) *Scheduler {
	t.Helper()

	s, err := NewScheduler(e.ledger, e.queue, e.settings, gw, slogx.Discard(), cfg)
	require.NoError(t, err)
	s.Now = e.clock.Now
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

type gatewayCall struct {
	Method    string
	ChannelID int64
	UserID    int64
	Text      string
}

// fakeGateway records calls. fail lists user ids whose calls fail; block,
// when set, holds RemoveUser until closed or the context ends.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []gatewayCall
	fail    map[int64]bool
	block   chan struct{}
	entered chan struct{}
	panics  bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{fail: map[int64]bool{}}
}

func (g *fakeGateway) record(c gatewayCall) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, c)
	if g.fail[c.UserID] {
		return fmt.Errorf("%w: %s refused", gateway.ErrTransient, c.Method)
	}
	return nil
}

func (g *fakeGateway) Calls(method string) []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []gatewayCall
	for _, c := range g.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (g *fakeGateway) InviteUser(ctx context.Context, channelID, userID int64) error {
	return g.record(gatewayCall{Method: "invite", ChannelID: channelID, UserID: userID})
}

func (g *fakeGateway) RemoveUser(ctx context.Context, channelID, userID int64) error {
	if g.panics {
		panic("gateway exploded")
	}
	if g.block != nil {
		if g.entered != nil {
			select {
			case g.entered <- struct{}{}:
			default:
			}
		}
		select {
		case <-g.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return g.record(gatewayCall{Method: "remove", ChannelID: channelID, UserID: userID})
}

func (g *fakeGateway) CreateOneTimeInviteLink(ctx context.Context, channelID, userID int64, expireHours int) (string, error) {
	if err := g.record(gatewayCall{Method: "link", ChannelID: channelID, UserID: userID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://t.me/+link-%d", userID), nil
}

func (g *fakeGateway) NotifyUser(ctx context.Context, userID int64, text string) error {
	return g.record(gatewayCall{Method: "notify", UserID: userID, Text: text})
}
