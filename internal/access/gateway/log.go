package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aussiebroadwan/lounge/pkg/slogx"
)

// Log is a ChannelGateway that only logs. It is used when no bot token is
// configured.
type Log struct {
	links atomic.Int64
}

func NewLog() *Log { return &Log{} }

func (g *Log) InviteUser(ctx context.Context, channelID, userID int64) error {
	slogx.FromContext(ctx).Info("gateway: invite user",
		slog.Int64("channel_id", channelID),
		slog.Int64("user_id", userID),
	)
	return nil
}

func (g *Log) RemoveUser(ctx context.Context, channelID, userID int64) error {
	slogx.FromContext(ctx).Info("gateway: remove user",
		slog.Int64("channel_id", channelID),
		slog.Int64("user_id", userID),
	)
	return nil
}

func (g *Log) CreateOneTimeInviteLink(ctx context.Context, channelID, userID int64, expireHours int) (string, error) {
	n := g.links.Add(1)
	link := fmt.Sprintf("https://t.me/+dev-%d-%d-%d", channelID, userID, n)
	slogx.FromContext(ctx).Info("gateway: create invite link",
		slog.Int64("channel_id", channelID),
		slog.Int64("user_id", userID),
		slog.Int("expire_hours", expireHours),
		slog.String("link", link),
	)
	return link, nil
}

func (g *Log) NotifyUser(ctx context.Context, userID int64, text string) error {
	slogx.FromContext(ctx).Info("gateway: notify user",
		slog.Int64("user_id", userID),
		slog.String("text", text),
	)
	return nil
}
