// Package exerciselogcreate реализует HTTP-обработчик записи подхода.
//
// Подходы пишет сам ученик в рамках собственной сессии; чужая сессия
// неотличима от несуществующей.
package exerciselogcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eldarvlg/trainer-platform/internal/http/middlewarectx"
	"github.com/eldarvlg/trainer-platform/internal/http/response"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
)

// Handler управляет HTTP-запросами на запись подхода.
type Handler struct {
	log      *slog.Logger
	guard    Guard
	service  Service
	validate *validator.Validate
}

// Guard описывает интерфейс решения о доступе.
type Guard interface {
	Authorize(ctx context.Context, ident *models.Identity, p authz.Params) error
}

// Service описывает интерфейс бизнес-логики тренировок.
type Service interface {
	LogExercise(ctx context.Context, studentUID string, req models.DummyExerciseLog) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, guard Guard, service Service) *Handler {
	return &Handler{
		log:      log,
		guard:    guard,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать подход упражнения
// @Description Добавляет подход в сессию текущего ученика.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param request body models.DummyExerciseLog true "Подход"
// @Success 200 {object} map[string]any "Подход записан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет"
// @Failure 404 {object} response.ErrorResponse "Сессия не найдена"
// @Router /workouts/logs [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.exerciselogcreate"
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

	if err := h.guard.Authorize(r.Context(), ident, authz.Params{
		AllowedRoles:     []models.Role{models.RoleStudent},
		TargetStudentUID: ident.UserUID,
	}); err != nil {
		log.Error("authorization denied", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	var req models.DummyExerciseLog
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	logID, err := h.service.LogExercise(r.Context(), ident.UserUID, req)
	if err != nil {
		log.Error("failed to log exercise set", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	log.Info("exercise set logged", slog.Int("log_id", logID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"log_id": logID,
	}))
}
