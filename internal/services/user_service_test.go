package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdminSeedsOnce(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "s3cret-pass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "other", "other@example.com", "another-pass"))

	n, err := svc.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	user, err := svc.AuthenticateUser(ctx, "Admin@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestEnsureAdminWithoutCredentialsIsNoop(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "", ""))
	n, err := svc.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthenticateUserFailures(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "admin@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = svc.AuthenticateUser(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.AuthenticateUser(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "", "a@b.c", "long-enough")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreateUser(ctx, "a", "a@b.c", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "admin", "admin@example.com", "old-password")
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "not-it", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	err = svc.UpdatePassword(ctx, user.ID, "old-password", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	err = svc.UpdatePassword(ctx, "missing", "old-password", "new-password")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "old-password", "new-password"))
	_, err = svc.AuthenticateUser(ctx, "admin@example.com", "new-password")
	assert.NoError(t, err)

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)
}
