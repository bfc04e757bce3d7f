package service

import (
	"testing"
	"time"

	"ctchen222/BookShelf/internal/api/repository"
	"ctchen222/BookShelf/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	pool, err := db.Connect(":memory:")
	require.NoError(t, err)
	pool.SetMaxOpenConns(1)
	require.NoError(t, db.Initialize(pool))

	t.Cleanup(func() { pool.Close() })
	return pool
}

func newTestUserService(t *testing.T, pool *sqlx.DB, ttl time.Duration) UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(pool), []byte(testSecret), ttl)
}
