// Package moderation classifies inbound group messages and issues
// punitive actions for link spam. Owner and chat admins are exempt.
package moderation

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
	"github.com/Black1ssl/menfess-bot/internal/metrics"
)

// DefaultBanDuration is how long a link-posting sender is banned.
const DefaultBanDuration = time.Hour

var linkRe = regexp.MustCompile(`https?://`)

// Actions is the subset of gateway operations the engine needs.
type Actions interface {
	DeleteMessage(ctx context.Context, chat domain.ChatID, id domain.MessageID) gateway.Result
	BanUser(ctx context.Context, chat domain.ChatID, user domain.UserID, until time.Time) gateway.Result
	UnbanUser(ctx context.Context, chat domain.ChatID, user domain.UserID) gateway.Result
	Reply(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) gateway.Result
	ChatMember(ctx context.Context, chat domain.ChatID, user domain.UserID) (domain.MemberStatus, gateway.Outcome)
}

// Engine decides exempt-or-act for every group text event.
type Engine struct {
	actions     Actions
	activity    domain.ActivityStore
	owner       domain.UserID
	banDuration time.Duration
	clock       clockwork.Clock
}

// NewEngine creates a moderation engine. owner is always exempt.
func NewEngine(actions Actions, activity domain.ActivityStore, owner domain.UserID, clock clockwork.Clock) *Engine {
	return &Engine{
		actions:     actions,
		activity:    activity,
		owner:       owner,
		banDuration: DefaultBanDuration,
		clock:       clock,
	}
}

// IsAdmin reports whether the user is an administrator or the creator
// of the chat. Lookup failures count as "not admin": a transient outage
// fails closed toward moderation, never toward exemption.
func (e *Engine) IsAdmin(ctx context.Context, chat domain.ChatID, user domain.UserID) bool {
	status, outcome := e.actions.ChatMember(ctx, chat, user)
	if outcome.Failed() {
		return false
	}
	return status.IsAdmin()
}

// HandleGroupText runs the moderation state machine for one group text
// message. States are evaluated in order, first match wins:
// owner exempt, admin exempt, link detected (delete + timed ban), clean.
// Activity accounting happens before any state is evaluated.
func (e *Engine) HandleGroupText(ctx context.Context, msg domain.Message) {
	if err := e.activity.Increment(ctx, msg.Sender.ID); err != nil {
		slog.ErrorContext(ctx, "activity increment failed", "user_id", msg.Sender.ID, "error", err)
	}

	if msg.Sender.ID == e.owner {
		return
	}

	if e.IsAdmin(ctx, msg.Chat, msg.Sender.ID) {
		return
	}

	if !linkRe.MatchString(msg.Text) {
		return
	}

	// Delete is best effort; the ban still goes out when it fails.
	e.actions.DeleteMessage(ctx, msg.Chat, msg.ID)
	metrics.ModerationActionsTotal.WithLabelValues("delete").Inc()

	until := e.clock.Now().Add(e.banDuration)
	res := e.actions.BanUser(ctx, msg.Chat, msg.Sender.ID, until)
	metrics.ModerationActionsTotal.WithLabelValues("ban").Inc()

	slog.InfoContext(ctx, "link message moderated",
		"user_id", msg.Sender.ID, "chat_id", msg.Chat,
		"ban_outcome", res.Outcome.String(), "until", until)
}
