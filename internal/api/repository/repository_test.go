package repository

import (
	"context"
	"testing"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database. A single connection keeps
// every query on the same memory store.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	pool, err := db.Connect(":memory:")
	require.NoError(t, err)
	pool.SetMaxOpenConns(1)
	require.NoError(t, db.Initialize(pool))

	t.Cleanup(func() { pool.Close() })
	return pool
}

func createTestUser(t *testing.T, repo UserRepository, username, email string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: email}
	require.NoError(t, repo.CreateUser(context.Background(), user, "pw123456"))
	require.NotZero(t, user.ID)
	return user
}
