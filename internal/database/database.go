// Package database provides the embedded sqlite store and the
// repositories over it. All mutation goes through atomic single
// statements or immediate transactions; the connection pool is capped
// at one writer so conflicting writes serialize per key.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS quota (
    user_id INTEGER NOT NULL,
    kind    TEXT    NOT NULL,
    day     TEXT    NOT NULL,
    count   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, kind, day)
);

CREATE TABLE IF NOT EXISTS activity (
    user_id INTEGER NOT NULL,
    day     TEXT    NOT NULL,
    count   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, day)
);

CREATE TABLE IF NOT EXISTS seen_users (
    user_id INTEGER PRIMARY KEY
);
`

// DB wraps the shared sqlite handle.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the sqlite database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single connection: sqlite has one writer anyway, and this keeps
	// read-check-write sequences serialized.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{DB: db}, nil
}

// dayKey renders the quota partition key for the clock's current day.
// Days are calendar dates in UTC; the day changing the key is what
// resets daily counters, no purge job exists.
func dayKey(clock clockwork.Clock) string {
	return clock.Now().UTC().Format(time.DateOnly)
}
