// Package add реализует HTTP-обработчик добавления ученика тренеру.
//
// Handler доступен только тренерам; проверка связки здесь не нужна —
// запрос саму связку и создает. Повторное добавление той же пары
// возвращает 409 Conflict.
package add

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

// Handler управляет HTTP-запросами на добавление ученика.
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

// Service описывает интерфейс бизнес-логики связок.
type Service interface {
	Create(ctx context.Context, trainerUID, studentUID string) (*models.Relationship, error)
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
// @Summary Добавить ученика
// @Description Создает активную связку тренер-ученик.
// @Tags Students
// @Accept json
// @Produce json
// @Param request body models.DummyAddStudent true "UID ученика"
// @Success 200 {object} map[string]any "Связка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет"
// @Failure 404 {object} response.ErrorResponse "Ученик не найден"
// @Failure 409 {object} response.ErrorResponse "Связка уже существует"
// @Router /students [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.add"
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
		AllowedRoles: []models.Role{models.RoleTrainer},
	}); err != nil {
		log.Error("authorization denied", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	var req models.DummyAddStudent
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

	rel, err := h.service.Create(r.Context(), ident.UserUID, req.StudentUID)
	if err != nil {
		log.Error("failed to create relationship", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	log.Info("student added", slog.String("student_uid", req.StudentUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"relationship_id": rel.ID,
		"started_at":      rel.StartedAt,
	}))
}
