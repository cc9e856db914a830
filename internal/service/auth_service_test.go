package service

import (
	"context"
	"testing"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/config"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  2 * time.Hour,
			RefreshTokenExpire: 168 * time.Hour,
			Issuer:             "tara-solar-erp",
		},
	}
}

func setupAuthService(t *testing.T) (*AuthService, *UserService) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewAuthService(repos.User, nil, testConfig()), NewUserService(repos.User)
}

func TestLoginSuccess(t *testing.T) {
	authSvc, userSvc := setupAuthService(t)
	ctx := context.Background()

	_, err := userSvc.Create(ctx, &CreateUserRequest{
		Name:     "Asha Iyer",
		Email:    "asha@tarasolar.in",
		Password: "sunshine-42",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	user, pair, err := authSvc.Login(ctx, &LoginRequest{Email: "asha@tarasolar.in", Password: "sunshine-42"})
	require.NoError(t, err)

	assert.Equal(t, "Asha Iyer", user.Name)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	authSvc, userSvc := setupAuthService(t)
	ctx := context.Background()

	_, err := userSvc.Create(ctx, &CreateUserRequest{
		Name:     "Asha Iyer",
		Email:    "asha@tarasolar.in",
		Password: "sunshine-42",
	})
	require.NoError(t, err)

	_, _, err = authSvc.Login(ctx, &LoginRequest{Email: "asha@tarasolar.in", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	authSvc, _ := setupAuthService(t)
	_, _, err := authSvc.Login(context.Background(), &LoginRequest{Email: "nobody@tarasolar.in", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	authSvc, userSvc := setupAuthService(t)
	ctx := context.Background()

	user, err := userSvc.Create(ctx, &CreateUserRequest{
		Name:     "Asha Iyer",
		Email:    "asha@tarasolar.in",
		Password: "sunshine-42",
	})
	require.NoError(t, err)

	status := entity.UserStatusInactive
	_, err = userSvc.Update(ctx, user.ID, &UpdateUserRequest{Status: &status})
	require.NoError(t, err)

	_, _, err = authSvc.Login(ctx, &LoginRequest{Email: "asha@tarasolar.in", Password: "sunshine-42"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	authSvc, userSvc := setupAuthService(t)
	ctx := context.Background()

	_, err := userSvc.Create(ctx, &CreateUserRequest{
		Name:     "Asha Iyer",
		Email:    "asha@tarasolar.in",
		Password: "sunshine-42",
	})
	require.NoError(t, err)

	_, pair, err := authSvc.Login(ctx, &LoginRequest{Email: "asha@tarasolar.in", Password: "sunshine-42"})
	require.NoError(t, err)

	fresh, err := authSvc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	authSvc, userSvc := setupAuthService(t)
	ctx := context.Background()

	_, err := userSvc.Create(ctx, &CreateUserRequest{
		Name:     "Asha Iyer",
		Email:    "asha@tarasolar.in",
		Password: "sunshine-42",
	})
	require.NoError(t, err)

	_, pair, err := authSvc.Login(ctx, &LoginRequest{Email: "asha@tarasolar.in", Password: "sunshine-42"})
	require.NoError(t, err)

	_, err = authSvc.RefreshToken(ctx, pair.AccessToken)
	assert.Error(t, err)
}
