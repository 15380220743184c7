package database

import (
	"context"
	"fmt"

	"github.com/Black1ssl/menfess-bot/internal/domain"
)

// SeenRepo implements domain.SeenStore backed by sqlite.
type SeenRepo struct {
	db *DB
}

// NewSeenRepo creates a SeenRepo from the shared DB connection.
func NewSeenRepo(db *DB) *SeenRepo {
	return &SeenRepo{db: db}
}

// MarkSeen records the user as greeted. The insert-or-ignore is a
// single atomic statement, so concurrent joins for the same user yield
// exactly one true.
func (r *SeenRepo) MarkSeen(ctx context.Context, user domain.UserID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO seen_users (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`,
		int64(user),
	)
	if err != nil {
		return false, fmt.Errorf("mark seen: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark seen: rows affected: %w", err)
	}
	return affected > 0, nil
}
