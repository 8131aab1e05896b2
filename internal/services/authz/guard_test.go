package authz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

type RelsMock struct{ mock.Mock }

func (m *RelsMock) IsActive(ctx context.Context, trainerUID, studentUID string) (bool, error) {
	args := m.Called(ctx, trainerUID, studentUID)
	return args.Bool(0), args.Error(1)
}

type EntitlementsMock struct{ mock.Mock }

func (m *EntitlementsMock) ForStudent(ctx context.Context, studentUID string) (*models.Subscription, error) {
	args := m.Called(ctx, studentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func trainer() *models.Identity {
	return &models.Identity{UserUID: "trainer-1", Username: "coach", Role: models.RoleTrainer}
}

func student() *models.Identity {
	return &models.Identity{UserUID: "student-1", Username: "pupil", Role: models.RoleStudent}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		ident      *models.Identity
		params     Params
		setupMocks func(r *RelsMock, e *EntitlementsMock)
		wantErr    error
	}{
		{
			name:       "нет identity дает not authenticated",
			ident:      nil,
			params:     Params{},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
			wantErr:    errs.ErrNotAuthenticated,
		},
		{
			name:       "роль вне списка дает role not allowed",
			ident:      student(),
			params:     Params{AllowedRoles: []models.Role{models.RoleTrainer}},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
			wantErr:    errs.ErrRoleNotAllowed,
		},
		{
			name:       "пустой список ролей пропускает любую роль",
			ident:      student(),
			params:     Params{},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
		},
		{
			name:  "тренер с активной связкой проходит",
			ident: trainer(),
			params: Params{
				AllowedRoles:     []models.Role{models.RoleTrainer},
				TargetStudentUID: "student-1",
			},
			setupMocks: func(r *RelsMock, _ *EntitlementsMock) {
				r.On("IsActive", mock.Anything, "trainer-1", "student-1").Return(true, nil).Once()
			},
		},
		{
			name:  "тренер без связки дает not your student",
			ident: trainer(),
			params: Params{
				AllowedRoles:     []models.Role{models.RoleTrainer},
				TargetStudentUID: "student-2",
			},
			setupMocks: func(r *RelsMock, _ *EntitlementsMock) {
				r.On("IsActive", mock.Anything, "trainer-1", "student-2").Return(false, nil).Once()
			},
			wantErr: errs.ErrNotYourStudent,
		},
		{
			name:       "ученик читает свои данные",
			ident:      student(),
			params:     Params{TargetStudentUID: "student-1"},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
		},
		{
			name:       "ученик не читает чужие данные",
			ident:      student(),
			params:     Params{TargetStudentUID: "student-2"},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
			wantErr:    errs.ErrRoleNotAllowed,
		},
		{
			name:  "неактивная подписка дает not entitled",
			ident: trainer(),
			params: Params{
				AllowedRoles:       []models.Role{models.RoleTrainer},
				TargetStudentUID:   "student-1",
				RequireEntitlement: true,
			},
			setupMocks: func(r *RelsMock, e *EntitlementsMock) {
				r.On("IsActive", mock.Anything, "trainer-1", "student-1").Return(true, nil).Once()
				e.On("ForStudent", mock.Anything, "student-1").
					Return(&models.Subscription{Status: models.SubscriptionOverdue}, nil).Once()
			},
			wantErr: errs.ErrNotEntitled,
		},
		{
			name:  "активная подписка проходит проверку",
			ident: trainer(),
			params: Params{
				AllowedRoles:       []models.Role{models.RoleTrainer},
				TargetStudentUID:   "student-1",
				RequireEntitlement: true,
			},
			setupMocks: func(r *RelsMock, e *EntitlementsMock) {
				r.On("IsActive", mock.Anything, "trainer-1", "student-1").Return(true, nil).Once()
				e.On("ForStudent", mock.Anything, "student-1").
					Return(&models.Subscription{Status: models.SubscriptionActive}, nil).Once()
			},
		},
		{
			name:  "проверка связки идет раньше проверки подписки",
			ident: trainer(),
			params: Params{
				AllowedRoles:       []models.Role{models.RoleTrainer},
				TargetStudentUID:   "student-2",
				RequireEntitlement: true,
			},
			setupMocks: func(r *RelsMock, _ *EntitlementsMock) {
				// ForStudent не настроен: до подписки дело дойти не должно.
				r.On("IsActive", mock.Anything, "trainer-1", "student-2").Return(false, nil).Once()
			},
			wantErr: errs.ErrNotYourStudent,
		},
		{
			name:  "проверка роли идет раньше проверки связки",
			ident: student(),
			params: Params{
				AllowedRoles:     []models.Role{models.RoleTrainer},
				TargetStudentUID: "student-2",
			},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
			wantErr:    errs.ErrRoleNotAllowed,
		},
		{
			name:  "ошибка хранилища связок дает store failure",
			ident: trainer(),
			params: Params{
				AllowedRoles:     []models.Role{models.RoleTrainer},
				TargetStudentUID: "student-1",
			},
			setupMocks: func(r *RelsMock, _ *EntitlementsMock) {
				r.On("IsActive", mock.Anything, "trainer-1", "student-1").
					Return(false, errors.New("db error")).Once()
			},
			wantErr: errs.ErrStoreFailure,
		},
		{
			name:  "ошибка вывода подписки дает store failure",
			ident: trainer(),
			params: Params{
				AllowedRoles:       []models.Role{models.RoleTrainer},
				TargetStudentUID:   "student-1",
				RequireEntitlement: true,
			},
			setupMocks: func(r *RelsMock, e *EntitlementsMock) {
				r.On("IsActive", mock.Anything, "trainer-1", "student-1").Return(true, nil).Once()
				e.On("ForStudent", mock.Anything, "student-1").
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: errs.ErrStoreFailure,
		},
		{
			name:  "тренер сам себе цель без связки",
			ident: trainer(),
			params: Params{
				AllowedRoles:     []models.Role{models.RoleTrainer},
				TargetStudentUID: "trainer-1",
			},
			setupMocks: func(_ *RelsMock, _ *EntitlementsMock) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rels := new(RelsMock)
			ents := new(EntitlementsMock)
			tt.setupMocks(rels, ents)

			guard := New(rels, ents, newNoopLogger())
			err := guard.Authorize(context.Background(), tt.ident, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			rels.AssertExpectations(t)
			ents.AssertExpectations(t)
		})
	}
}
