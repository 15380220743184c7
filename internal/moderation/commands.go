package moderation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/metrics"
)

// authorize checks that the command arrived in a group from the owner
// or a chat admin. It sends the rejection reply itself and reports
// whether the caller may proceed.
func (e *Engine) authorize(ctx context.Context, msg domain.Message) bool {
	if !msg.IsGroup() {
		e.actions.Reply(ctx, msg.Chat, msg.ID, "❌ Perintah ini hanya bisa di grup")
		return false
	}
	if msg.Sender.ID == e.owner {
		return true
	}
	if !e.IsAdmin(ctx, msg.Chat, msg.Sender.ID) {
		e.actions.Reply(ctx, msg.Chat, msg.ID, "⛔ Kamu bukan admin grup")
		return false
	}
	return true
}

// HandleBanCommand processes "/ban <user_id> [jam]".
func (e *Engine) HandleBanCommand(ctx context.Context, msg domain.Message) {
	if !e.authorize(ctx, msg) {
		return
	}

	if len(msg.Args) == 0 {
		e.actions.Reply(ctx, msg.Chat, msg.ID, "Gunakan: /ban <user_id> [jam]")
		return
	}

	target, err := strconv.ParseInt(msg.Args[0], 10, 64)
	if err != nil {
		e.actions.Reply(ctx, msg.Chat, msg.ID, "ID tidak valid")
		return
	}

	hours := 1
	if len(msg.Args) > 1 {
		if h, err := strconv.Atoi(msg.Args[1]); err == nil {
			hours = h
		}
	}

	until := e.clock.Now().Add(time.Duration(hours) * time.Hour)
	e.actions.BanUser(ctx, msg.Chat, domain.UserID(target), until)
	metrics.ModerationActionsTotal.WithLabelValues("ban").Inc()

	e.actions.Reply(ctx, msg.Chat, msg.ID, fmt.Sprintf("✅ User diban %d jam", hours))
}

// HandleKickCommand processes "/kick <user_id>": a ban followed by an
// immediate unban, so the user is removed but may rejoin.
func (e *Engine) HandleKickCommand(ctx context.Context, msg domain.Message) {
	if !e.authorize(ctx, msg) {
		return
	}

	if len(msg.Args) == 0 {
		e.actions.Reply(ctx, msg.Chat, msg.ID, "Gunakan: /kick <user_id>")
		return
	}

	target, err := strconv.ParseInt(msg.Args[0], 10, 64)
	if err != nil {
		e.actions.Reply(ctx, msg.Chat, msg.ID, "ID tidak valid")
		return
	}

	e.actions.BanUser(ctx, msg.Chat, domain.UserID(target), time.Time{})
	e.actions.UnbanUser(ctx, msg.Chat, domain.UserID(target))
	metrics.ModerationActionsTotal.WithLabelValues("kick").Inc()

	e.actions.Reply(ctx, msg.Chat, msg.ID, "✅ User dikick dari grup")
}
