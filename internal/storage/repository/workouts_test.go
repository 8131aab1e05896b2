package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

func TestStorage_WorkoutPlanLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	trainerUID := createTestUser(t, storage, "coach", models.RoleTrainer)
	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)

	planID, err := storage.CreateWorkoutPlan(ctx, models.WorkoutPlan{
		StudentUID:  studentUID,
		TrainerUID:  trainerUID,
		Name:        "Сила и масса",
		Description: "базовый сплит",
		IsActive:    true,
	})
	require.NoError(t, err)
	require.NotZero(t, planID)

	dayID, err := storage.CreateWorkoutDay(ctx, models.WorkoutDay{
		PlanID:  planID,
		DayName: "понедельник",
		Focus:   "грудь",
	})
	require.NoError(t, err)

	err = storage.CreateWorkoutExercises(ctx, []models.WorkoutExercise{
		{DayID: dayID, Name: "жим лежа", Sets: 4, Reps: "8-10", RestSeconds: 120},
		{DayID: dayID, Name: "разводка", Sets: 3, Reps: "12", RestSeconds: 90, OrderIndex: 1},
	})
	require.NoError(t, err)

	plans, err := storage.ListWorkoutPlans(ctx, studentUID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Сила и масса", plans[0].Name)

	// Компенсирующее удаление в обратном порядке: упражнения, день, план.
	require.NoError(t, storage.RemoveWorkoutExercisesByDay(ctx, dayID))
	require.NoError(t, storage.RemoveWorkoutDay(ctx, dayID))
	require.NoError(t, storage.RemoveWorkoutPlan(ctx, planID))

	plans, err = storage.ListWorkoutPlans(ctx, studentUID)
	require.NoError(t, err)
	assert.Empty(t, plans)

	// Повторное удаление идемпотентно.
	assert.NoError(t, storage.RemoveWorkoutPlan(ctx, planID))
}

func TestStorage_Measurements(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)

	id, err := storage.CreateMeasurement(ctx, models.Measurement{
		StudentUID: studentUID,
		MeasuredOn: mustDate(t, "01-06-2025"),
		WeightKg:   80.5,
		BodyFatPct: 18.2,
		Notes:      "после отпуска",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = storage.CreateMeasurement(ctx, models.Measurement{
		StudentUID: studentUID,
		MeasuredOn: mustDate(t, "01-05-2025"),
		WeightKg:   82,
	})
	require.NoError(t, err)

	measurements, err := storage.ListMeasurements(ctx, studentUID)
	require.NoError(t, err)
	require.Len(t, measurements, 2)
	// Хронологический порядок: майский замер раньше июньского.
	assert.True(t, measurements[0].MeasuredOn.Before(measurements[1].MeasuredOn))
}
