package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

func TestStorage_CreateRelationship(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	trainerUID := createTestUser(t, storage, "coach", models.RoleTrainer)
	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)

	rel, err := storage.CreateRelationship(ctx, trainerUID, studentUID)
	require.NoError(t, err)
	assert.Equal(t, trainerUID, rel.TrainerUID)
	assert.Equal(t, studentUID, rel.StudentUID)
	assert.Equal(t, models.RelationshipActive, rel.Status)
	assert.NotZero(t, rel.ID)

	// Повторная активная связка той же пары нарушает частичный
	// уникальный индекс и дает доменную ошибку конфликта.
	_, err = storage.CreateRelationship(ctx, trainerUID, studentUID)
	assert.ErrorIs(t, err, errs.ErrDuplicateRelationship)

	// Другой тренер может вести того же ученика.
	otherTrainer := createTestUser(t, storage, "othercoach", models.RoleTrainer)
	_, err = storage.CreateRelationship(ctx, otherTrainer, studentUID)
	assert.NoError(t, err)
}

func TestStorage_EndRelationship(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	trainerUID := createTestUser(t, storage, "coach", models.RoleTrainer)
	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)

	_, err := storage.CreateRelationship(ctx, trainerUID, studentUID)
	require.NoError(t, err)

	affected, err := storage.EndRelationship(ctx, trainerUID, studentUID)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	active, err := storage.IsActiveRelationship(ctx, trainerUID, studentUID)
	require.NoError(t, err)
	assert.False(t, active)

	// Завершать больше нечего.
	affected, err = storage.EndRelationship(ctx, trainerUID, studentUID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	// После завершения пара может быть связана заново: индекс частичный,
	// история в ended строках сохраняется.
	_, err = storage.CreateRelationship(ctx, trainerUID, studentUID)
	assert.NoError(t, err)
}

func TestStorage_ListStudents(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	trainerUID := createTestUser(t, storage, "coach", models.RoleTrainer)
	first := createTestUser(t, storage, "pupil1", models.RoleStudent)
	second := createTestUser(t, storage, "pupil2", models.RoleStudent)
	third := createTestUser(t, storage, "pupil3", models.RoleStudent)

	_, err := storage.CreateRelationship(ctx, trainerUID, first)
	require.NoError(t, err)
	_, err = storage.CreateRelationship(ctx, trainerUID, second)
	require.NoError(t, err)
	_, err = storage.CreateRelationship(ctx, trainerUID, third)
	require.NoError(t, err)

	// Отчисленный ученик в список не попадает.
	_, err = storage.EndRelationship(ctx, trainerUID, third)
	require.NoError(t, err)

	students, err := storage.ListStudents(ctx, trainerUID)
	require.NoError(t, err)
	require.Len(t, students, 2)

	usernames := []string{students[0].Username, students[1].Username}
	assert.Contains(t, usernames, "pupil1")
	assert.Contains(t, usernames, "pupil2")
}
