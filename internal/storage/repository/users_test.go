package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Email:        "coach@example.com",
		Username:     "coach",
		PasswordHash: "hashedpassword",
		Role:         models.RoleTrainer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	user, err := storage.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "coach", user.Username)
	assert.Equal(t, models.RoleTrainer, user.Role)
}

func TestStorage_GetUserByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, storage, "pupil", models.RoleStudent)

	user, err := storage.GetUserByUsername(ctx, "pupil")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)

	_, err = storage.GetUserByUsername(ctx, "nosuchuser")
	assert.ErrorIs(t, err, errs.ErrTargetNotFound)
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetUser(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, errs.ErrTargetNotFound)
}
