package service

import (
	"context"
	"testing"
	"time"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAlice(t *testing.T, svc UserService) *models.AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "pw123456",
	})
	require.NoError(t, err)
	return resp
}

func TestUserService_RegisterIssuesVerifiableToken(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t), time.Hour)

	resp := registerAlice(t, svc)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@x.com", resp.Email)
	require.NotEmpty(t, resp.Token)

	user, err := svc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestUserService_RegisterValidatesInput(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t), time.Hour)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing username", models.RegisterRequest{Email: "a@x.com", Password: "pw123456"}},
		{"missing email", models.RegisterRequest{Username: "alice", Password: "pw123456"}},
		{"missing password", models.RegisterRequest{Username: "alice", Email: "a@x.com"}},
		{"malformed email", models.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "pw123456"}},
		{"short password", models.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestUserService_RegisterConflictsAreDistinguishable(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t), time.Hour)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice2",
		Email:    "alice@x.com",
		Password: "pw123456",
	})
	require.Error(t, err)
	emailMsg := apperr.MessageOf(err)
	assert.Equal(t, "Email already registered", emailMsg)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice",
		Email:    "alice2@x.com",
		Password: "pw123456",
	})
	require.Error(t, err)
	usernameMsg := apperr.MessageOf(err)
	assert.Equal(t, "Username already taken", usernameMsg)

	assert.NotEqual(t, emailMsg, usernameMsg)
}

func TestUserService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t), time.Hour)
	registerAlice(t, svc)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@x.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	wrongPassword := apperr.MessageOf(err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@x.com",
		Password: "pw123456",
	})
	require.Error(t, err)
	unknownEmail := apperr.MessageOf(err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	// No leak about which part failed.
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestUserService_LoginSucceedsWithCorrectCredentials(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t), time.Hour)
	registerAlice(t, svc)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@x.com",
		Password: "pw123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestUserService_VerifyTokenTaxonomy(t *testing.T) {
	pool := newTestDB(t)
	svc := newTestUserService(t, pool, time.Hour)
	registerAlice(t, svc)

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.VerifyToken(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
		assert.Equal(t, "No token provided. Authorization denied.", apperr.MessageOf(err))
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.VerifyToken(context.Background(), "not-a-jwt")
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
		assert.Equal(t, "Invalid token. Authorization denied.", apperr.MessageOf(err))
	})

	t.Run("expired token", func(t *testing.T) {
		expiredSvc := newTestUserService(t, pool, -time.Minute)
		resp, err := expiredSvc.Login(context.Background(), &models.LoginRequest{
			Email:    "alice@x.com",
			Password: "pw123456",
		})
		require.NoError(t, err)

		_, err = expiredSvc.VerifyToken(context.Background(), resp.Token)
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
		assert.Equal(t, "Token expired. Please login again.", apperr.MessageOf(err))
	})

	t.Run("user no longer exists", func(t *testing.T) {
		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "ghost",
			Email:    "ghost@x.com",
			Password: "pw123456",
		})
		require.NoError(t, err)

		_, err = pool.Exec(`DELETE FROM users WHERE id = ?`, resp.ID)
		require.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), resp.Token)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
