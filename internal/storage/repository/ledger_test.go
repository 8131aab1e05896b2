package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

func TestStorage_ListPaymentEvents_Ordering(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)
	planID := createTestPlan(t, storage, "monthly", 1)

	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Вставляем не по порядку дат, плюс два события на одну дату.
	insertTestEvent(t, storage, studentUID, feb, models.OutcomePending, planID)
	insertTestEvent(t, storage, studentUID, jan, models.OutcomePaid, planID)
	insertTestEvent(t, storage, studentUID, feb, models.OutcomePaid, planID)

	events, err := storage.ListPaymentEvents(ctx, studentUID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// По возрастанию даты, ничья на февраль решается порядком вставки.
	assert.Equal(t, jan, events[0].OccurredOn.UTC())
	assert.Equal(t, models.OutcomePending, events[1].Outcome)
	assert.Equal(t, models.OutcomePaid, events[2].Outcome)
	assert.Less(t, events[1].Seq, events[2].Seq)
}

func TestStorage_CreatePaymentEvent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)
	planID := createTestPlan(t, storage, "monthly", 1)

	seq, err := storage.CreatePaymentEvent(ctx, models.PaymentEvent{
		ID:         uuid.New().String(),
		StudentUID: studentUID,
		Amount:     2000,
		OccurredOn: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindFirstPayment,
		Outcome:    models.OutcomePaid,
		PlanID:     planID,
	})
	require.NoError(t, err)
	assert.NotZero(t, seq)

	events, err := storage.ListPaymentEvents(ctx, studentUID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.KindFirstPayment, events[0].Kind)
}

func TestStorage_AmendLatestOutcome(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)
	planID := createTestPlan(t, storage, "monthly", 1)

	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	insertTestEvent(t, storage, studentUID, jan, models.OutcomePaid, planID)
	insertTestEvent(t, storage, studentUID, feb, models.OutcomePending, planID)

	affected, err := storage.AmendLatestOutcome(ctx, studentUID)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	events, err := storage.ListPaymentEvents(ctx, studentUID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Оплаченное январское событие не переписывается.
	assert.Equal(t, models.OutcomePaid, events[0].Outcome)
	assert.Equal(t, models.OutcomeCancelled, events[1].Outcome)
}

func TestStorage_AmendLatestOutcome_AllPaid(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)
	planID := createTestPlan(t, storage, "monthly", 1)
	insertTestEvent(t, storage, studentUID,
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), models.OutcomePaid, planID)

	affected, err := storage.AmendLatestOutcome(ctx, studentUID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestStorage_MarkCancelled(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	studentUID := createTestUser(t, storage, "pupil", models.RoleStudent)

	cancelled, err := storage.IsCancelled(ctx, studentUID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	require.NoError(t, storage.MarkCancelled(ctx, studentUID))

	cancelled, err = storage.IsCancelled(ctx, studentUID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	// Повторная отмена идемпотентна.
	assert.NoError(t, storage.MarkCancelled(ctx, studentUID))
}

func TestStorage_Plans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	id, err := storage.CreatePlan(ctx, models.MembershipPlan{
		Name:             "yearly",
		Price:            20000,
		RecurrenceMonths: 12,
	})
	require.NoError(t, err)

	plan, err := storage.GetPlan(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "yearly", plan.Name)
	assert.Equal(t, 12, plan.RecurrenceMonths)

	// Несуществующий план отдается как nil без ошибки.
	missing, err := storage.GetPlan(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	plans, err := storage.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}
