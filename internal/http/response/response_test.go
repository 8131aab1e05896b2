package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eldarvlg/trainer-platform/internal/errs"
)

func TestAuthzError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "не аутентифицирован дает 401",
			err:        fmt.Errorf("authz.Authorize: %w", errs.ErrNotAuthenticated),
			wantStatus: http.StatusUnauthorized,
			wantBody:   errs.ErrNotAuthenticated.Error(),
		},
		{
			name:       "роль не позволяет дает 403",
			err:        fmt.Errorf("authz.Authorize: %w", errs.ErrRoleNotAllowed),
			wantStatus: http.StatusForbidden,
			wantBody:   errs.ErrRoleNotAllowed.Error(),
		},
		{
			name:       "чужой ученик дает 403",
			err:        fmt.Errorf("authz.Authorize: %w", errs.ErrNotYourStudent),
			wantStatus: http.StatusForbidden,
			wantBody:   errs.ErrNotYourStudent.Error(),
		},
		{
			name:       "нет подписки дает 403",
			err:        fmt.Errorf("authz.Authorize: %w", errs.ErrNotEntitled),
			wantStatus: http.StatusForbidden,
			wantBody:   errs.ErrNotEntitled.Error(),
		},
		{
			name:       "цель не найдена дает 404",
			err:        fmt.Errorf("relationship.End: %w", errs.ErrTargetNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   errs.ErrTargetNotFound.Error(),
		},
		{
			name:       "дубликат связки дает 409",
			err:        fmt.Errorf("relationship.Create: %w", errs.ErrDuplicateRelationship),
			wantStatus: http.StatusConflict,
			wantBody:   errs.ErrDuplicateRelationship.Error(),
		},
		{
			name:       "прочая ошибка дает 500 без деталей",
			err:        fmt.Errorf("storage: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			AuthzError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			// Цепочка op не утекает клиенту.
			assert.NotContains(t, w.Body.String(), "authz.Authorize")
		})
	}
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
