// Package greet welcomes users the first time they ever join.
package greet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
)

// Actions is the subset of gateway operations the greeter needs.
type Actions interface {
	Reply(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) gateway.Result
}

// Greeter sends at most one welcome message per user, ever. The seen
// store's atomic insert guarantees idempotency under concurrent join
// events for the same user.
type Greeter struct {
	actions Actions
	seen    domain.SeenStore
}

// NewGreeter creates a greeter.
func NewGreeter(actions Actions, seen domain.SeenStore) *Greeter {
	return &Greeter{actions: actions, seen: seen}
}

// HandleJoin greets every first-time member in the join event.
func (g *Greeter) HandleJoin(ctx context.Context, msg domain.Message) {
	for _, member := range msg.Joined {
		first, err := g.seen.MarkSeen(ctx, member.ID)
		if err != nil {
			slog.ErrorContext(ctx, "mark seen failed", "user_id", member.ID, "error", err)
			continue
		}
		if !first {
			continue
		}

		g.actions.Reply(ctx, msg.Chat, msg.ID,
			fmt.Sprintf("👋 Selamat datang %s\nSilakan baca rules.", member.FullName))
	}
}
