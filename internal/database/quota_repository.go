package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/metrics"
)

// QuotaRepo implements domain.QuotaStore backed by sqlite.
type QuotaRepo struct {
	db    *DB
	clock clockwork.Clock
}

// NewQuotaRepo creates a QuotaRepo from the shared DB connection.
func NewQuotaRepo(db *DB, clock clockwork.Clock) *QuotaRepo {
	return &QuotaRepo{db: db, clock: clock}
}

// CheckAndConsume atomically consumes one unit of (user, kind, today)
// quota. The conditional upsert makes the read-check-write sequence a
// single statement, so two concurrent calls for the same key can never
// both succeed past the limit.
func (r *QuotaRepo) CheckAndConsume(ctx context.Context, user domain.UserID, kind domain.ActionKind, max int) (bool, error) {
	if max < 1 {
		metrics.QuotaDecisionsTotal.WithLabelValues(string(kind), "denied").Inc()
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quota (user_id, kind, day, count) VALUES (?, ?, ?, 1)
		ON CONFLICT (user_id, kind, day) DO UPDATE SET count = count + 1
		WHERE quota.count < ?`,
		int64(user), string(kind), dayKey(r.clock), max,
	)
	if err != nil {
		return false, fmt.Errorf("consume quota: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume quota: rows affected: %w", err)
	}

	allowed := affected > 0
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	metrics.QuotaDecisionsTotal.WithLabelValues(string(kind), result).Inc()

	return allowed, nil
}

// Count returns the stored count for (user, kind, day), zero if absent.
func (r *QuotaRepo) Count(ctx context.Context, user domain.UserID, kind domain.ActionKind, day string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count FROM quota WHERE user_id = ? AND kind = ? AND day = ?`,
		int64(user), string(kind), day,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count quota: %w", err)
	}
	return count, nil
}

// PurgeBefore deletes quota rows older than the given day. Nothing in
// the process schedules this; it exists for operator use.
func (r *QuotaRepo) PurgeBefore(ctx context.Context, day string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quota WHERE day < ?`, day)
	if err != nil {
		return 0, fmt.Errorf("purge quota: %w", err)
	}
	return res.RowsAffected()
}
