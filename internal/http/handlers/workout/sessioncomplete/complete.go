// Package sessioncomplete реализует HTTP-обработчик завершения сессии.
//
// Закрыть сессию может только её владелец; уже закрытая сессия
// повторно не переписывается.
package sessioncomplete

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eldarvlg/trainer-platform/internal/http/middlewarectx"
	"github.com/eldarvlg/trainer-platform/internal/http/response"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
)

// Handler управляет HTTP-запросами на завершение сессии.
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
	CompleteSession(ctx context.Context, studentUID string, sessionID int, req models.DummyCompleteSession) error
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
// @Summary Завершить сессию тренировки
// @Description Закрывает сессию текущего ученика с итогами тренировки.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param sessionID path int true "ID сессии"
// @Param request body models.DummyCompleteSession true "Итоги тренировки"
// @Success 200 {object} map[string]any "Сессия закрыта"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет"
// @Failure 404 {object} response.ErrorResponse "Сессия не найдена"
// @Router /workouts/sessions/{sessionID} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.sessioncomplete"
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

	sessionID, err := strconv.Atoi(chi.URLParam(r, "sessionID"))
	if err != nil {
		log.Error("invalid session id in url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid session id"))
		return
	}

	var req models.DummyCompleteSession
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

	if err := h.service.CompleteSession(r.Context(), ident.UserUID, sessionID, req); err != nil {
		log.Error("failed to complete session", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	log.Info("workout session completed", slog.Int("session_id", sessionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_id": sessionID,
	}))
}
