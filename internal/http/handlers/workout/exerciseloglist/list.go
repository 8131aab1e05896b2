// Package exerciseloglist реализует HTTP-обработчик списка подходов сессии.
//
// Цель проверки доступа определяется владельцем сессии: ученик видит
// только свои сессии, тренер — сессии учеников с активной связкой.
package exerciseloglist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eldarvlg/trainer-platform/internal/http/middlewarectx"
	"github.com/eldarvlg/trainer-platform/internal/http/response"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
)

// Handler управляет HTTP-запросами на список подходов.
type Handler struct {
	log     *slog.Logger
	guard   Guard
	service Service
}

// Guard описывает интерфейс решения о доступе.
type Guard interface {
	Authorize(ctx context.Context, ident *models.Identity, p authz.Params) error
}

// Service описывает интерфейс бизнес-логики тренировок.
type Service interface {
	SessionOwner(ctx context.Context, sessionID int) (string, error)
	ListExerciseLogs(ctx context.Context, sessionID int) ([]*models.ExerciseLog, error)
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
// @Summary Подходы сессии
// @Description Возвращает подходы сессии в порядке записи.
// @Tags Workouts
// @Produce json
// @Param session_id query int true "ID сессии"
// @Success 200 {object} map[string]any "Подходы"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Не ваш ученик"
// @Failure 404 {object} response.ErrorResponse "Сессия не найдена"
// @Router /workouts/logs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.exerciseloglist"
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

	sessionID, err := strconv.Atoi(r.URL.Query().Get("session_id"))
	if err != nil {
		log.Error("invalid session id in query", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid session id"))
		return
	}

	owner, err := h.service.SessionOwner(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to resolve session owner", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	if err := h.guard.Authorize(r.Context(), ident, authz.Params{
		TargetStudentUID: owner,
	}); err != nil {
		log.Error("authorization denied", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	logs, err := h.service.ListExerciseLogs(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to list exercise logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list exercise logs"))
		return
	}

	log.Info("exercise logs listed", slog.Int("count", len(logs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logs": logs,
	}))
}
