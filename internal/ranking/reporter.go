// Package ranking renders the daily chat leaderboard.
package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
)

// TopN is how many users the leaderboard shows.
const TopN = 10

// Actions is the subset of gateway operations the reporter needs.
type Actions interface {
	Reply(ctx context.Context, chat domain.ChatID, replyTo domain.MessageID, text string) gateway.Result
}

// ActivityReader is the read side of the activity store.
type ActivityReader interface {
	TopForDay(ctx context.Context, day string, n int) ([]domain.ActivityCount, error)
	Today() string
}

// Reporter renders a point-in-time snapshot of today's most active
// users. Read-only, no mutation.
type Reporter struct {
	actions  Actions
	activity ActivityReader
}

// NewReporter creates a ranking reporter.
func NewReporter(actions Actions, activity ActivityReader) *Reporter {
	return &Reporter{actions: actions, activity: activity}
}

// HandleTopChatCommand replies with the top-ten leaderboard for today.
func (r *Reporter) HandleTopChatCommand(ctx context.Context, msg domain.Message) {
	top, err := r.activity.TopForDay(ctx, r.activity.Today(), TopN)
	if err != nil {
		slog.ErrorContext(ctx, "leaderboard query failed", "error", err)
		return
	}

	r.actions.Reply(ctx, msg.Chat, msg.ID, Render(top))
}

// Render formats the leaderboard as a 1-indexed list.
func Render(top []domain.ActivityCount) string {
	var b strings.Builder
	b.WriteString("🏆 TOP CHAT HARI INI\n\n")
	for i, entry := range top {
		fmt.Fprintf(&b, "%d. ID %d → %d pesan\n", i+1, entry.User, entry.Count)
	}
	return b.String()
}
