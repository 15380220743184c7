package database

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

// ActivityRepo implements domain.ActivityStore backed by sqlite.
type ActivityRepo struct {
	db    *DB
	clock clockwork.Clock
}

// NewActivityRepo creates an ActivityRepo from the shared DB connection.
func NewActivityRepo(db *DB, clock clockwork.Clock) *ActivityRepo {
	return &ActivityRepo{db: db, clock: clock}
}

// Increment bumps the user's message counter for today.
func (r *ActivityRepo) Increment(ctx context.Context, user domain.UserID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity (user_id, day, count) VALUES (?, ?, 1)
		ON CONFLICT (user_id, day) DO UPDATE SET count = count + 1`,
		int64(user), dayKey(r.clock),
	)
	if err != nil {
		return fmt.Errorf("increment activity: %w", err)
	}
	return nil
}

// TopForDay returns the n most active users of the given day,
// descending by count.
func (r *ActivityRepo) TopForDay(ctx context.Context, day string, n int) ([]domain.ActivityCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, count FROM activity WHERE day = ? ORDER BY count DESC LIMIT ?`,
		day, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var top []domain.ActivityCount
	for rows.Next() {
		var entry domain.ActivityCount
		if err := rows.Scan(&entry.User, &entry.Count); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		top = append(top, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}

	return top, nil
}

// Today renders the current day key, for callers rendering reports.
func (r *ActivityRepo) Today() string {
	return dayKey(r.clock)
}

// PurgeBefore deletes activity rows older than the given day.
func (r *ActivityRepo) PurgeBefore(ctx context.Context, day string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activity WHERE day < ?`, day)
	if err != nil {
		return 0, fmt.Errorf("purge activity: %w", err)
	}
	return res.RowsAffected()
}
