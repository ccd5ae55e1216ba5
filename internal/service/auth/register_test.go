package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/backend/internal/apperrors"
	models "github.com/clubhub/backend/internal/models/users"
	"github.com/clubhub/backend/pkg/utils"
)

type fakeUserStore struct {
	users  map[string]models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, email, hashedPassword string) (int64, error) {
	if _, ok := f.users[username]; ok {
		return 0, apperrors.ErrUsernameTaken
	}
	for _, u := range f.users {
		if u.Email == email {
			return 0, apperrors.ErrEmailTaken
		}
	}
	user := models.User{
		UserID:   f.nextID,
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleMember,
	}
	f.nextID++
	f.users[username] = user
	return user.UserID, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return user, nil
}

func TestSignupHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	id, err := svc.Signup(context.Background(), "alice", "alice@club.test", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored := store.users["alice"]
	assert.NotEqual(t, "hunter22", stored.Password)
	assert.NoError(t, utils.CheckPassword(stored.Password, "hunter22"))
}

func TestSignupDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Signup(context.Background(), "alice", "alice@club.test", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "alice", "other@club.test", "hunter22")
	assert.True(t, errors.Is(err, apperrors.ErrUsernameTaken))
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Signup(context.Background(), "alice", "alice@club.test", "hunter22")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, models.RoleMember, user.Role)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["user_id"])
	assert.Equal(t, string(models.RoleMember), claims["role"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Signup(context.Background(), "alice", "alice@club.test", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	// Unknown user reports the same error as a wrong password.
	_, _, err = svc.Login(context.Background(), "nobody", "hunter22")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}
