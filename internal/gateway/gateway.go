// Package gateway is the single choke point for every outbound platform
// call. It bounds concurrent outbound traffic with a fixed permit pool,
// enforces a pacing delay after each call while the permit is still
// held, and absorbs call failures into typed outcomes instead of errors.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/metrics"
)

const (
	// DefaultConcurrency is the default permit pool size.
	DefaultConcurrency = 5
	// DefaultPacing is the default post-call delay before a permit is
	// released.
	DefaultPacing = 250 * time.Millisecond
)

// Gateway serializes and paces all outbound platform calls.
// Safe for concurrent use; the permit pool is the only cross-handler
// synchronization point for outbound traffic.
type Gateway struct {
	api     domain.PlatformAPI
	permits chan struct{}
	pacing  time.Duration
	clock   clockwork.Clock
}

// New creates a gateway over the given platform client.
// concurrency is the permit pool size; pacing is the post-call delay
// held before each permit release.
func New(api domain.PlatformAPI, concurrency int, pacing time.Duration, clock clockwork.Clock) *Gateway {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Gateway{
		api:     api,
		permits: make(chan struct{}, concurrency),
		pacing:  pacing,
		clock:   clock,
	}
}

// acquire obtains a permit, blocking until one is free or ctx is done.
func (g *Gateway) acquire(ctx context.Context) bool {
	waitStart := g.clock.Now()
	select {
	case g.permits <- struct{}{}:
		metrics.GatewayPermitWait.Observe(g.clock.Since(waitStart).Seconds())
		metrics.GatewayInFlight.Inc()
		return true
	case <-ctx.Done():
		return false
	}
}

// release pauses for the pacing interval, then frees the permit.
// The pause happens while the permit is still held so burst rate stays
// bounded no matter how many handlers fire at once.
func (g *Gateway) release() {
	g.clock.Sleep(g.pacing)
	metrics.GatewayInFlight.Dec()
	<-g.permits
}

func (g *Gateway) invoke(ctx context.Context, op string, call func(context.Context) (domain.MessageID, error)) Result {
	if !g.acquire(ctx) {
		return Result{Outcome: OutcomeRetryable}
	}
	defer g.release()

	start := g.clock.Now()
	id, err := call(ctx)
	metrics.GatewayCallDuration.WithLabelValues(op).Observe(g.clock.Since(start).Seconds())

	outcome := Classify(err)
	metrics.GatewayCallsTotal.WithLabelValues(op, outcome.String()).Inc()
	if outcome.Failed() {
		slog.WarnContext(ctx, "outbound call failed",
			"operation", op, "outcome", outcome.String(), "error", err)
	}

	return Result{Outcome: outcome, MessageID: id}
}

// SendText sends a plain text message to a chat.
func (g *Gateway) SendText(ctx context.Context, chat domain.ChatID, text string) Result {
	return g.invoke(ctx, "send_text", func(ctx context.Context) (domain.MessageID, error) {
		return g.api.SendText(ctx, chat, text)
	})
}

// Reply sends a text message replying to an existing message.
func (g *Gateway) Reply(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) Result {
	return g.invoke(ctx, "reply", func(ctx context.Context) (domain.MessageID, error) {
		return g.api.Reply(ctx, chat, replyTo, text)
	})
}

// CopyMessage relays a message verbatim into another chat.
func (g *Gateway) CopyMessage(ctx context.Context, to, from domain.ChatID, id domain.MessageID) Result {
	return g.invoke(ctx, "copy_message", func(ctx context.Context) (domain.MessageID, error) {
		return g.api.CopyMessage(ctx, to, from, id)
	})
}

// DeleteMessage removes a message from a chat.
func (g *Gateway) DeleteMessage(ctx context.Context, chat domain.ChatID, id domain.MessageID) Result {
	return g.invoke(ctx, "delete_message", func(ctx context.Context) (domain.MessageID, error) {
		return 0, g.api.DeleteMessage(ctx, chat, id)
	})
}

// BanUser bans a user from a chat until the given time.
// A zero until means a permanent ban.
func (g *Gateway) BanUser(ctx context.Context, chat domain.ChatID, user domain.UserID, until time.Time) Result {
	return g.invoke(ctx, "ban_user", func(ctx context.Context) (domain.MessageID, error) {
		return 0, g.api.BanUser(ctx, chat, user, until)
	})
}

// UnbanUser lifts a ban, letting the user rejoin.
func (g *Gateway) UnbanUser(ctx context.Context, chat domain.ChatID, user domain.UserID) Result {
	return g.invoke(ctx, "unban_user", func(ctx context.Context) (domain.MessageID, error) {
		return 0, g.api.UnbanUser(ctx, chat, user)
	})
}

// SendVideo uploads a local file as a video message.
func (g *Gateway) SendVideo(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, path string) Result {
	return g.invoke(ctx, "send_video", func(ctx context.Context) (domain.MessageID, error) {
		return g.api.SendVideo(ctx, chat, replyTo, path)
	})
}

// SendDocument uploads a local file as a generic document message.
func (g *Gateway) SendDocument(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, path string) Result {
	return g.invoke(ctx, "send_document", func(ctx context.Context) (domain.MessageID, error) {
		return g.api.SendDocument(ctx, chat, replyTo, path)
	})
}

// ChatMember looks up a user's status in a chat. On any failure the
// returned outcome is not OK and the status must not be trusted.
func (g *Gateway) ChatMember(ctx context.Context, chat domain.ChatID, user domain.UserID) (domain.MemberStatus, Outcome) {
	if !g.acquire(ctx) {
		return "", OutcomeRetryable
	}
	defer g.release()

	start := g.clock.Now()
	status, err := g.api.GetChatMember(ctx, chat, user)
	metrics.GatewayCallDuration.WithLabelValues("get_chat_member").Observe(g.clock.Since(start).Seconds())

	outcome := Classify(err)
	metrics.GatewayCallsTotal.WithLabelValues("get_chat_member", outcome.String()).Inc()
	if outcome.Failed() {
		slog.WarnContext(ctx, "outbound call failed",
			"operation", "get_chat_member", "outcome", outcome.String(), "error", err)
	}

	return status, outcome
}
