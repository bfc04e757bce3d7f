package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/api/repository"
	"ctchen222/BookShelf/internal/apperr"
	"ctchen222/BookShelf/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the session token contents: the owning user's id as the
// subject plus the username for log readability.
type Claims struct {
	Username string `json:"un"`
	jwt.RegisteredClaims
}

// UserService defines the interface for authentication business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewUserService creates a new UserService. The secret signs session
// tokens; tokenTTL bounds their validity.
func NewUserService(userRepo repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration) UserService {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new account and returns a fresh token with the public
// user fields. Email and username conflicts produce distinct messages.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validator.GetValidator().StructCtx(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Please provide username, email, and password", err)
	}

	if existing, err := s.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Validation("Email already registered")
	}
	if existing, err := s.userRepo.GetUserByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Validation("Username already taken")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}
	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// Login verifies credentials and returns a fresh token. An unknown email
// and a wrong password fail with the same message so the caller cannot
// tell which part was wrong.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := validator.GetValidator().StructCtx(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Please provide email and password", err)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Auth("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Auth("Invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// VerifyToken validates a session token and resolves the user it refers
// to. Expired and malformed tokens fail with distinct messages; a token for
// a user that no longer exists is a not-found, not an auth failure.
func (s *userService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, apperr.Auth("No token provided. Authorization denied.")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindAuth, "Token expired. Please login again.", err)
		}
		return nil, apperr.Wrap(apperr.KindAuth, "Invalid token. Authorization denied.", err)
	}
	if !token.Valid {
		return nil, apperr.Auth("Invalid token. Authorization denied.")
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, apperr.Wrap(apperr.KindAuth, "Invalid token. Authorization denied.", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *userService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
