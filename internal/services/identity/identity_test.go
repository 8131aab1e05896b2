package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	jwtlib "github.com/eldarvlg/trainer-platform/internal/lib/jwt"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

func TestResolver_Resolve(t *testing.T) {
	maker := jwtlib.NewJWTMaker("test_secret", time.Hour)
	resolver := NewResolver(maker)

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		wantErr  error
		wantRole models.Role
	}{
		{
			name: "валидный токен тренера разрешается в identity",
			token: func(t *testing.T) string {
				token, err := maker.GenerateToken("coach", "trainer", "trainer-1")
				require.NoError(t, err)
				return token
			},
			wantRole: models.RoleTrainer,
		},
		{
			name: "валидный токен ученика разрешается в identity",
			token: func(t *testing.T) string {
				token, err := maker.GenerateToken("pupil", "student", "student-1")
				require.NoError(t, err)
				return token
			},
			wantRole: models.RoleStudent,
		},
		{
			name: "мусорный токен дает ошибку аутентификации",
			token: func(_ *testing.T) string {
				return "not.a.token"
			},
			wantErr: errs.ErrNotAuthenticated,
		},
		{
			name: "токен с чужой подписью отклоняется",
			token: func(t *testing.T) string {
				other := jwtlib.NewJWTMaker("other_secret", time.Hour)
				token, err := other.GenerateToken("coach", "trainer", "trainer-1")
				require.NoError(t, err)
				return token
			},
			wantErr: errs.ErrNotAuthenticated,
		},
		{
			name: "просроченный токен отклоняется",
			token: func(t *testing.T) string {
				expired := jwtlib.NewJWTMaker("test_secret", -time.Minute)
				token, err := expired.GenerateToken("coach", "trainer", "trainer-1")
				require.NoError(t, err)
				return token
			},
			wantErr: errs.ErrNotAuthenticated,
		},
		{
			name: "неизвестная роль в claims отклоняется",
			token: func(t *testing.T) string {
				token, err := maker.GenerateToken("root", "admin", "user-1")
				require.NoError(t, err)
				return token
			},
			wantErr: errs.ErrNotAuthenticated,
		},
		{
			name: "пустой uid пользователя отклоняется",
			token: func(t *testing.T) string {
				token, err := maker.GenerateToken("coach", "trainer", "")
				require.NoError(t, err)
				return token
			},
			wantErr: errs.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := resolver.Resolve(tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ident)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, ident)
			assert.Equal(t, tt.wantRole, ident.Role)
			assert.NotEmpty(t, ident.UserUID)
			assert.NotEmpty(t, ident.Username)
		})
	}
}
