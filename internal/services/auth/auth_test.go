package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/lib/jwt"
	"github.com/eldarvlg/trainer-platform/internal/lib/password"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error {
	return m.Called(ctx, userUID, passwordHash).Error(0)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyRegister
		setupMocks func(u *UsersMock)
		wantUID    string
		wantErr    bool
	}{
		{
			name: "успешная регистрация ученика",
			req: models.DummyRegister{
				Email:    "pupil@example.com",
				Username: "pupil",
				Password: "secret-password",
				Role:     "student",
			},
			setupMocks: func(u *UsersMock) {
				u.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Username == "pupil" &&
						user.Role == models.RoleStudent &&
						user.PasswordHash != "" &&
						user.PasswordHash != "secret-password"
				})).Return("uid-1", nil).Once()
			},
			wantUID: "uid-1",
		},
		{
			name: "неизвестная роль отклоняется",
			req: models.DummyRegister{
				Email:    "admin@example.com",
				Username: "admin",
				Password: "secret-password",
				Role:     "admin",
			},
			setupMocks: func(_ *UsersMock) {},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			service := New(users, newMaker())
			uid, err := service.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUID, uid)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("secret-password")
	require.NoError(t, err)
	user := &models.User{
		UID:          "uid-1",
		Username:     "coach",
		PasswordHash: hash,
		Role:         models.RoleTrainer,
	}

	tests := []struct {
		name       string
		password   string
		setupMocks func(u *UsersMock)
		wantErr    bool
	}{
		{
			name:     "успешный вход",
			password: "secret-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByUsername", mock.Anything, "coach").Return(user, nil).Once()
			},
		},
		{
			name:     "неверный пароль",
			password: "wrong-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByUsername", mock.Anything, "coach").Return(user, nil).Once()
			},
			wantErr: true,
		},
		{
			name:     "пользователь не найден",
			password: "secret-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByUsername", mock.Anything, "coach").
					Return(nil, errs.ErrTargetNotFound).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			service := New(users, newMaker())
			token, role, err := service.Login(context.Background(), "coach", tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.RoleTrainer, role)

			// Токен должен нести UID и роль пользователя.
			claims, err := newMaker().ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "uid-1", claims.UserUID)
			assert.Equal(t, "trainer", claims.Role)
			users.AssertExpectations(t)
		})
	}
}

func TestService_Profile(t *testing.T) {
	user := &models.User{
		UID:      "uid-1",
		Email:    "pupil@example.com",
		Username: "pupil",
		Role:     models.RoleStudent,
	}

	users := new(UsersMock)
	users.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
	users.On("GetUser", mock.Anything, "uid-2").Return(nil, errs.ErrTargetNotFound).Once()

	service := New(users, newMaker())

	got, err := service.Profile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = service.Profile(context.Background(), "uid-2")
	require.ErrorIs(t, err, errs.ErrTargetNotFound)
	users.AssertExpectations(t)
}

func TestService_ResetPassword(t *testing.T) {
	hash, err := password.GetHash("old-password")
	require.NoError(t, err)
	user := &models.User{UID: "uid-1", Username: "pupil", PasswordHash: hash}

	tests := []struct {
		name        string
		oldPassword string
		setupMocks  func(u *UsersMock)
		wantErr     bool
	}{
		{
			name:        "успешная смена пароля",
			oldPassword: "old-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
				u.On("UpdateUserPassword", mock.Anything, "uid-1", mock.MatchedBy(func(h string) bool {
					// Сохраняется хэш нового пароля, не сам пароль.
					return h != "" && h != "new-password" &&
						password.CompareHash(h, "new-password") == nil
				})).Return(nil).Once()
			},
		},
		{
			name:        "неверный старый пароль",
			oldPassword: "wrong-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
			},
			wantErr: true,
		},
		{
			name:        "пользователь не найден",
			oldPassword: "old-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUser", mock.Anything, "uid-1").
					Return(nil, errs.ErrTargetNotFound).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			service := New(users, newMaker())
			err := service.ResetPassword(context.Background(), "uid-1", models.DummyResetPassword{
				OldPassword: tt.oldPassword,
				NewPassword: "new-password",
			})

			if tt.wantErr {
				assert.Error(t, err)
				users.AssertNotCalled(t, "UpdateUserPassword",
					mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			users.AssertExpectations(t)
		})
	}
}
