package db

import (
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// schema creates the two tables the service owns. The uniqueness of
// (user_id, google_id) and the ownership foreign key are enforced here, in
// the store, so concurrent saves of the same catalog item cannot race past
// the application-level checks.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS books (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	google_id TEXT NOT NULL,
	title TEXT NOT NULL,
	subtitle TEXT NOT NULL DEFAULT '',
	authors TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	thumbnail TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Want to Read',
	personal_review TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	UNIQUE(user_id, google_id)
);

CREATE INDEX IF NOT EXISTS idx_books_user_created ON books(user_id, created_at);
`

// Connect opens a SQLite database at the given path. Use ":memory:" for
// tests.
func Connect(dbPath string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if _, err := pool.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return pool, nil
}

// Initialize applies the schema to an open connection.
func Initialize(pool *sqlx.DB) error {
	if _, err := pool.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	slog.Info("DB connection initialized and schema verified")
	return nil
}
