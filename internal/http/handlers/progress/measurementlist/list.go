// Package measurementlist реализует HTTP-обработчик чтения замеров ученика.
package measurementlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eldarvlg/trainer-platform/internal/http/middlewarectx"
	"github.com/eldarvlg/trainer-platform/internal/http/response"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
)

// Handler управляет HTTP-запросами на чтение замеров.
type Handler struct {
	log     *slog.Logger
	guard   Guard
	service Service
}

// Guard описывает интерфейс решения о доступе.
type Guard interface {
	Authorize(ctx context.Context, ident *models.Identity, p authz.Params) error
}

// Service описывает интерфейс бизнес-логики прогресса.
type Service interface {
	List(ctx context.Context, studentUID string) ([]*models.Measurement, error)
}

// New создает новый Handler.
func New(log *slog.Logger, guard Guard, service Service) *Handler {
	return &Handler{
		log:     log,
		guard:   guard,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Замеры ученика
// @Description Возвращает замеры ученика в хронологическом порядке.
// @Tags Progress
// @Produce json
// @Param student_uid query string false "UID ученика (по умолчанию сам вызывающий)"
// @Success 200 {object} map[string]any "Замеры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Не ваш ученик"
// @Router /progress/measurements [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.measurementlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ident, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	studentUID := r.URL.Query().Get("student_uid")
	if studentUID == "" {
		studentUID = ident.UserUID
	}

	if err := h.guard.Authorize(r.Context(), ident, authz.Params{
		TargetStudentUID: studentUID,
	}); err != nil {
		log.Error("authorization denied", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	measurements, err := h.service.List(r.Context(), studentUID)
	if err != nil {
		log.Error("failed to list measurements", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list measurements"))
		return
	}

	log.Info("measurements listed", slog.Int("count", len(measurements)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"measurements": measurements,
	}))
}
