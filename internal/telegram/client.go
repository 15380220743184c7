// Package telegram adapts the Telegram Bot API to the domain's
// PlatformAPI contract.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

const updateTimeoutSeconds = 30

// Client wraps a Bot API client. The vendor client carries no context
// support; per-call deadlines come from the HTTP client timeout
// configured at construction (the ctx parameters exist to satisfy
// domain.PlatformAPI).
type Client struct {
	bot *tgbotapi.BotAPI
}

// NewClient creates a Client authenticated with the given bot token.
// timeout applies to every HTTP round trip (connect plus read).
func NewClient(token string, timeout time.Duration) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("authenticate bot: %w", err)
	}

	return &Client{bot: bot}, nil
}

// Username returns the authenticated bot's username.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// wrapErr converts vendor API errors into domain.PlatformError so the
// gateway can distinguish platform rejections from transport failures.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", op, &domain.PlatformError{Code: apiErr.Code, Message: apiErr.Message})
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Client) SendText(_ context.Context, chat domain.ChatID, text string) (domain.MessageID, error) {
	msg, err := c.bot.Send(tgbotapi.NewMessage(int64(chat), text))
	if err != nil {
		return 0, wrapErr("send message", err)
	}
	return domain.MessageID(msg.MessageID), nil
}

func (c *Client) Reply(_ context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) (domain.MessageID, error) {
	cfg := tgbotapi.NewMessage(int64(chat), text)
	cfg.ReplyToMessageID = int(replyTo)
	msg, err := c.bot.Send(cfg)
	if err != nil {
		return 0, wrapErr("reply", err)
	}
	return domain.MessageID(msg.MessageID), nil
}

func (c *Client) CopyMessage(_ context.Context, to, from domain.ChatID, id domain.MessageID) (domain.MessageID, error) {
	copied, err := c.bot.CopyMessage(tgbotapi.NewCopyMessage(int64(to), int64(from), int(id)))
	if err != nil {
		return 0, wrapErr("copy message", err)
	}
	return domain.MessageID(copied.MessageID), nil
}

func (c *Client) DeleteMessage(_ context.Context, chat domain.ChatID, id domain.MessageID) error {
	_, err := c.bot.Request(tgbotapi.NewDeleteMessage(int64(chat), int(id)))
	return wrapErr("delete message", err)
}

func (c *Client) BanUser(_ context.Context, chat domain.ChatID, user domain.UserID, until time.Time) error {
	cfg := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: int64(chat),
			UserID: int64(user),
		},
	}
	if !until.IsZero() {
		cfg.UntilDate = until.Unix()
	}
	_, err := c.bot.Request(cfg)
	return wrapErr("ban user", err)
}

func (c *Client) UnbanUser(_ context.Context, chat domain.ChatID, user domain.UserID) error {
	cfg := tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: int64(chat),
			UserID: int64(user),
		},
	}
	_, err := c.bot.Request(cfg)
	return wrapErr("unban user", err)
}

func (c *Client) GetChatMember(_ context.Context, chat domain.ChatID, user domain.UserID) (domain.MemberStatus, error) {
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: int64(chat),
			UserID: int64(user),
		},
	})
	if err != nil {
		return "", wrapErr("get chat member", err)
	}
	return domain.MemberStatus(member.Status), nil
}

func (c *Client) SendVideo(_ context.Context, chat domain.ChatID, replyTo domain.MessageID, path string) (domain.MessageID, error) {
	cfg := tgbotapi.NewVideo(int64(chat), tgbotapi.FilePath(path))
	cfg.ReplyToMessageID = int(replyTo)
	msg, err := c.bot.Send(cfg)
	if err != nil {
		return 0, wrapErr("send video", err)
	}
	return domain.MessageID(msg.MessageID), nil
}

func (c *Client) SendDocument(_ context.Context, chat domain.ChatID, replyTo domain.MessageID, path string) (domain.MessageID, error) {
	cfg := tgbotapi.NewDocument(int64(chat), tgbotapi.FilePath(path))
	cfg.ReplyToMessageID = int(replyTo)
	msg, err := c.bot.Send(cfg)
	if err != nil {
		return 0, wrapErr("send document", err)
	}
	return domain.MessageID(msg.MessageID), nil
}

// Updates starts long polling and returns a channel of converted
// inbound messages. The channel closes when polling stops.
func (c *Client) Updates() <-chan domain.Message {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSeconds

	raw := c.bot.GetUpdatesChan(cfg)
	out := make(chan domain.Message)

	go func() {
		defer close(out)
		for update := range raw {
			if update.Message == nil {
				continue
			}
			out <- convertMessage(update.Message)
		}
	}()

	return out
}

// StopUpdates stops long polling; the Updates channel closes soon after.
func (c *Client) StopUpdates() {
	c.bot.StopReceivingUpdates()
}
