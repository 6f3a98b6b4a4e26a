package service

import (
	"context"
	"testing"
	"time"

	"costsmap/internal/dto"
	"costsmap/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(users *fakeUserStore) *AuthService {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	return NewAuthService(&fakeDB{}, users, jwtManager, zap.NewNop())
}

func TestRegisterLoginRefresh(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Currency: "$",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, "$", registered.User.Currency)

	// the stored password must be a hash, not the plaintext
	stored, err := users.GetByEmail(ctx, nil, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.Password)

	logged, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	refreshed, err := svc.RefreshToken(ctx, logged.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Currency: "$",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshWithAccessTokenStillResolvesUser(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Currency: "$",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.RefreshToken(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
