package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubhub/backend/internal/apperrors"
	models "github.com/clubhub/backend/internal/models/users"
	"github.com/clubhub/backend/pkg/utils"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, hashedPassword string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

type AuthService struct {
	Store  UserStore
	Secret string
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(store UserStore, secret string) *AuthService {
	return &AuthService{Store: store, Secret: secret}
}

// Signup handles user registration
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (int64, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	return s.Store.CreateUser(ctx, username, email, hashedPassword)
}

// Login authenticates a user. A missing user and a wrong password report the
// same error so the response does not leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	user, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: %w", apperrors.ErrInvalidCredentials)
	}

	if err := utils.CheckPassword(user.Password, password); err != nil {
		return "", models.User{}, fmt.Errorf("auth: %w", apperrors.ErrInvalidCredentials)
	}

	token, err := s.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

// GenerateJWT creates a JWT token for authentication
func (s *AuthService) GenerateJWT(userID int64, role models.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(s.Secret))
}
