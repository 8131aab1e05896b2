package middlewarectx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

type ResolverMock struct{ mock.Mock }

func (m *ResolverMock) Resolve(token string) (*models.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	ident := &models.Identity{UserUID: "uid-1", Username: "coach", Role: models.RoleTrainer}

	tests := []struct {
		name        string
		authHeader  string
		setupMocks  func(r *ResolverMock)
		wantStatus  int
		wantReached bool
	}{
		{
			name:       "валидный токен кладет identity в контекст",
			authHeader: "Bearer good-token",
			setupMocks: func(r *ResolverMock) {
				r.On("Resolve", "good-token").Return(ident, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:       "нет заголовка дает 401",
			authHeader: "",
			setupMocks: func(_ *ResolverMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "заголовок без Bearer дает 401",
			authHeader: "Basic abc",
			setupMocks: func(_ *ResolverMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "невалидный токен дает 401",
			authHeader: "Bearer bad-token",
			setupMocks: func(r *ResolverMock) {
				r.On("Resolve", "bad-token").
					Return(nil, errors.New("token expired")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(ResolverMock)
			tt.setupMocks(resolver)

			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				got, ok := IdentityFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, ident, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			JWTMiddleware(resolver, newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)
			resolver.AssertExpectations(t)
		})
	}
}
