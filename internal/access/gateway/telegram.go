package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const DefaultTelegramAPIURL = "https://api.telegram.org"

// Telegram implements ChannelGateway on the Telegram Bot API.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	client tgbotapi.HTTPClient
	now    func() time.Time
}

type TelegramOption func(*Telegram)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c tgbotapi.HTTPClient) TelegramOption {
	return func(t *Telegram) { t.client = c }
}

// WithClock sets the clock used to compute invite link expiry.
func WithClock(now func() time.Time) TelegramOption {
	return func(t *Telegram) { t.now = now }
}

// NewTelegram builds the gateway without calling getMe, so a bad token
// surfaces on the first reconciliation instead of at boot.
func NewTelegram(baseURL, botToken string, opts ...TelegramOption) *Telegram {
	if baseURL == "" {
		baseURL = DefaultTelegramAPIURL
	}
	bot := &tgbotapi.BotAPI{Token: botToken, Buffer: 100}
	bot.SetAPIEndpoint(strings.TrimRight(baseURL, "/") + "/bot%s/%s")

	t := &Telegram{
		bot:    bot,
		client: &http.Client{Timeout: 10 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Telegram) InviteUser(ctx context.Context, channelID, userID int64) error {
	_, err := t.request(ctx, tgbotapi.ApproveChatJoinRequestConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: channelID},
		UserID:     userID,
	})
	return err
}

// RemoveUser bans then immediately unbans so the user can rejoin later.
func (t *Telegram) RemoveUser(ctx context.Context, channelID, userID int64) error {
	member := tgbotapi.ChatMemberConfig{ChatID: channelID, UserID: userID}
	if _, err := t.request(ctx, tgbotapi.BanChatMemberConfig{ChatMemberConfig: member}); err != nil {
		return err
	}
	_, err := t.request(ctx, tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: member,
		OnlyIfBanned:     true,
	})
	return err
}

func (t *Telegram) CreateOneTimeInviteLink(ctx context.Context, channelID, userID int64, expireHours int) (string, error) {
	cfg := tgbotapi.CreateChatInviteLinkConfig{
		ChatConfig:  tgbotapi.ChatConfig{ChatID: channelID},
		Name:        fmt.Sprintf("user-%d", userID),
		MemberLimit: 1,
	}
	if expireHours > 0 {
		cfg.ExpireDate = int(t.now().Add(time.Duration(expireHours) * time.Hour).Unix())
	}

	resp, err := t.request(ctx, cfg)
	if err != nil {
		return "", err
	}

	var link tgbotapi.ChatInviteLink
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return "", fmt.Errorf("%w: createChatInviteLink: decode result: %v", ErrTransient, err)
	}
	if link.InviteLink == "" {
		return "", fmt.Errorf("%w: createChatInviteLink returned no link", ErrTransient)
	}
	return link.InviteLink, nil
}

func (t *Telegram) NotifyUser(ctx context.Context, userID int64, text string) error {
	_, err := t.request(ctx, tgbotapi.NewMessage(userID, text))
	return err
}

// request sends c on a copy of the bot whose client carries ctx.
func (t *Telegram) request(ctx context.Context, c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	method := methodName(c)

	bot := *t.bot
	bot.Client = ctxClient{ctx: ctx, base: t.client}

	resp, err := bot.Request(c)
	if err == nil {
		return resp, nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return nil, fmt.Errorf("%w: %s: %d %s", ErrTransient, method, apiErr.Code, apiErr.Message)
	}
	// Transport errors quote the URL, which carries the bot token.
	msg := err.Error()
	if t.bot.Token != "" {
		msg = strings.ReplaceAll(msg, t.bot.Token, "<redacted>")
	}
	return nil, fmt.Errorf("%w: %s: request failed: %s", ErrTransient, method, msg)
}

func methodName(c tgbotapi.Chattable) string {
	switch c.(type) {
	case tgbotapi.ApproveChatJoinRequestConfig:
		return "approveChatJoinRequest"
	case tgbotapi.BanChatMemberConfig:
		return "banChatMember"
	case tgbotapi.UnbanChatMemberConfig:
		return "unbanChatMember"
	case tgbotapi.CreateChatInviteLinkConfig:
		return "createChatInviteLink"
	case tgbotapi.MessageConfig:
		return "sendMessage"
	default:
		return fmt.Sprintf("%T", c)
	}
}

// ctxClient binds a context to requests built by the library, which
// does not take one.
type ctxClient struct {
	ctx  context.Context
	base tgbotapi.HTTPClient
}

func (c ctxClient) Do(req *http.Request) (*http.Response, error) {
	return c.base.Do(req.WithContext(c.ctx))
}
