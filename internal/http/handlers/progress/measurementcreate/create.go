// Package measurementcreate реализует HTTP-обработчик записи замера ученика.
//
// Замеры пишет сам ученик, тренер их только читает.
package measurementcreate

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

// Handler управляет HTTP-запросами на запись замера.
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

// Service описывает интерфейс бизнес-логики прогресса.
type Service interface {
	Create(ctx context.Context, studentUID string, req models.DummyMeasurement) (int, error)
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
// @Summary Записать замер
// @Description Добавляет замер текущего ученика.
// @Tags Progress
// @Accept json
// @Produce json
// @Param request body models.DummyMeasurement true "Замер"
// @Success 200 {object} map[string]any "Замер записан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет"
// @Router /progress/measurements [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.measurementcreate"
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

	var req models.DummyMeasurement
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

	measurementID, err := h.service.Create(r.Context(), ident.UserUID, req)
	if err != nil {
		log.Error("failed to create measurement", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create measurement"))
		return
	}

	log.Info("measurement created", slog.Int("measurement_id", measurementID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"measurement_id": measurementID,
	}))
}
