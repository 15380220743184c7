// Package relay forwards tagged private messages anonymously into the
// configured destination chats, gated by per-user daily quotas.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
)

const (
	// MaxTextPerDay and MaxMediaPerDay are the relay quota limits.
	MaxTextPerDay  = 5
	MaxMediaPerDay = 10

	summaryLimit = 200
)

var requiredTags = []string{"#pria", "#wanita"}

// Actions is the subset of gateway operations the relay needs.
type Actions interface {
	Reply(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) gateway.Result
	CopyMessage(ctx context.Context, to, from domain.ChatID, id domain.MessageID) gateway.Result
	SendText(ctx context.Context, chat domain.ChatID, text string) gateway.Result
}

// Targets are the fixed destination chats for relayed messages.
type Targets struct {
	Channel     domain.ChatID
	PublicGroup domain.ChatID
	LogChannel  domain.ChatID
}

// Service implements the relay flow.
type Service struct {
	actions Actions
	quota   domain.QuotaStore
	targets Targets
}

// NewService creates a relay service.
func NewService(actions Actions, quota domain.QuotaStore, targets Targets) *Service {
	return &Service{actions: actions, quota: quota, targets: targets}
}

func hasRequiredTag(text string) bool {
	for _, tag := range requiredTags {
		if strings.Contains(text, tag) {
			return true
		}
	}
	return false
}

// HandlePrivateMessage validates, quota-gates, and relays one private
// message. Validation failures always get a reply; relay delivery is
// best effort.
func (s *Service) HandlePrivateMessage(ctx context.Context, msg domain.Message) {
	if !hasRequiredTag(msg.Text) {
		s.actions.Reply(ctx, msg.Chat, msg.ID, "⚠️ Wajib sertakan #pria atau #wanita")
		return
	}

	kind, max := domain.KindText, MaxTextPerDay
	if msg.HasMedia() {
		kind, max = domain.KindMedia, MaxMediaPerDay
	}

	allowed, err := s.quota.CheckAndConsume(ctx, msg.Sender.ID, kind, max)
	if err != nil {
		slog.ErrorContext(ctx, "quota check failed", "user_id", msg.Sender.ID, "kind", kind, "error", err)
		return
	}
	if !allowed {
		s.actions.Reply(ctx, msg.Chat, msg.ID, "⛔ Limit harian tercapai")
		return
	}

	for _, target := range []domain.ChatID{s.targets.Channel, s.targets.PublicGroup} {
		s.actions.CopyMessage(ctx, target, msg.Chat, msg.ID)
	}

	summary := fmt.Sprintf("MENFESS\nNama: %s\nUsername: @%s\nID: %d\nIsi: %s",
		msg.Sender.FullName, msg.Sender.Username, msg.Sender.ID, truncate(msg.Text, summaryLimit))
	s.actions.SendText(ctx, s.targets.LogChannel, summary)

	s.actions.Reply(ctx, msg.Chat, msg.ID, "✅ Menfess berhasil dikirim")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
