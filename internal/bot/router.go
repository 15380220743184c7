package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Black1ssl/menfess-bot/internal/correlation"
	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/metrics"
)

// HandlerFunc processes a single inbound message.
type HandlerFunc func(ctx context.Context, msg domain.Message)

// Handlers holds the message handlers the router dispatches to.
// Nil entries are skipped.
type Handlers struct {
	Download       HandlerFunc
	Ban            HandlerFunc
	Kick           HandlerFunc
	TopChat        HandlerFunc
	PrivateMessage HandlerFunc
	GroupText      HandlerFunc
	Join           HandlerFunc
}

// Router dispatches inbound updates to the matching handler. Each update
// runs in its own goroutine with a fresh correlation ID.
type Router struct {
	handlers Handlers
	flood    *FloodGuard
	wg       sync.WaitGroup
}

func NewRouter(handlers Handlers, flood *FloodGuard) *Router {
	return &Router{
		handlers: handlers,
		flood:    flood,
	}
}

// Run consumes updates until the channel closes or ctx is cancelled,
// then waits for in-flight handlers to finish.
func (r *Router) Run(ctx context.Context, updates <-chan domain.Message) {
	for {
		select {
		case <-ctx.Done():
			r.wg.Wait()
			return
		case msg, ok := <-updates:
			if !ok {
				r.wg.Wait()
				return
			}
			r.Dispatch(ctx, msg)
		}
	}
}

// Dispatch routes a single message. Join events bypass the flood guard
// so that welcomes are never dropped.
func (r *Router) Dispatch(ctx context.Context, msg domain.Message) {
	if len(msg.Joined) > 0 {
		r.spawn(ctx, "join", r.handlers.Join, msg)
		return
	}

	if r.flood != nil && !r.flood.Allow(msg.Sender.ID) {
		metrics.UpdatesFlooded.Inc()
		slog.Debug("update dropped by flood guard", "user_id", msg.Sender.ID)
		return
	}

	if msg.Command != "" {
		switch msg.Command {
		case "dl":
			r.spawn(ctx, "download", r.handlers.Download, msg)
		case "ban":
			r.spawn(ctx, "ban", r.handlers.Ban, msg)
		case "kick":
			r.spawn(ctx, "kick", r.handlers.Kick, msg)
		case "topchat":
			r.spawn(ctx, "topchat", r.handlers.TopChat, msg)
		}
		return
	}

	switch {
	case msg.IsPrivate():
		r.spawn(ctx, "menfess", r.handlers.PrivateMessage, msg)
	case msg.IsGroup() && msg.Text != "":
		r.spawn(ctx, "group_text", r.handlers.GroupText, msg)
	}
}

// Wait blocks until all in-flight handlers have returned.
func (r *Router) Wait() {
	r.wg.Wait()
}

func (r *Router) spawn(ctx context.Context, name string, h HandlerFunc, msg domain.Message) {
	if h == nil {
		return
	}
	metrics.UpdatesTotal.WithLabelValues(name).Inc()

	hctx := correlation.WithID(ctx, correlation.NewID())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		h(hctx, msg)
	}()
}
