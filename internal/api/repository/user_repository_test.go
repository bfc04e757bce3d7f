package repository

import (
	"context"
	"testing"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := createTestUser(t, repo, "alice", "alice@x.com")

	// Plaintext must never be stored.
	assert.NotEqual(t, "pw123456", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))

	byEmail, err := repo.GetUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, user.ID, byUsername.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_GetMissingIsNotAnError(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetUserByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_DuplicateEmailAndUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	createTestUser(t, repo, "alice", "alice@x.com")

	err := repo.CreateUser(ctx, &models.User{Username: "alice2", Email: "alice@x.com"}, "pw123456")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))

	err = repo.CreateUser(ctx, &models.User{Username: "alice", Email: "alice2@x.com"}, "pw123456")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Username already taken", apperr.MessageOf(err))
}
