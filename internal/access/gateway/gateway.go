// Package gateway performs the membership side effects on the messaging
// platform: adding and removing users and handing out invite links.
package gateway

import (
	"context"
	"errors"
)

// ErrTransient wraps every failure of a platform call. The engine never
// retries inline; callers log and move on.
var ErrTransient = errors.New("gateway: transient failure")

// ChannelGateway is the platform boundary used by the scheduler.
type ChannelGateway interface {
	// InviteUser admits userID to channelID (approves a pending join request).
	InviteUser(ctx context.Context, channelID, userID int64) error

	// RemoveUser removes userID from channelID without banning them for good.
	RemoveUser(ctx context.Context, channelID, userID int64) error

	// CreateOneTimeInviteLink returns a link valid for a single join that
	// expires after expireHours.
	CreateOneTimeInviteLink(ctx context.Context, channelID, userID int64, expireHours int) (string, error)

	// NotifyUser sends text to userID as a direct message.
	NotifyUser(ctx context.Context, userID int64, text string) error
}
