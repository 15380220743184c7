package domain

import "context"

// QuotaStore enforces "at most max actions of a kind per user per day".
type QuotaStore interface {
	// CheckAndConsume atomically consumes one unit of quota for
	// (user, kind, today). Returns false without mutating when the
	// stored count has reached max.
	CheckAndConsume(ctx context.Context, user UserID, kind ActionKind, max int) (bool, error)
}

// ActivityCount is one leaderboard row.
type ActivityCount struct {
	User  UserID
	Count int
}

// ActivityStore tracks per-user daily message counts for ranking.
type ActivityStore interface {
	Increment(ctx context.Context, user UserID) error
	TopForDay(ctx context.Context, day string, n int) ([]ActivityCount, error)
}

// SeenStore remembers which users have already been greeted.
type SeenStore interface {
	// MarkSeen inserts the user if absent. Returns true exactly once
	// per user, even under concurrent calls.
	MarkSeen(ctx context.Context, user UserID) (bool, error)
}
