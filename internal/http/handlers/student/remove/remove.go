// Package remove реализует HTTP-обработчик отчисления ученика.
//
// Связка переводится в статус ended и никогда не удаляется: история
// сохраняется, но новые чтения и записи по ученику блокируются сразу.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eldarvlg/trainer-platform/internal/http/middlewarectx"
	"github.com/eldarvlg/trainer-platform/internal/http/response"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
)

// Handler управляет HTTP-запросами на отчисление ученика.
type Handler struct {
	log     *slog.Logger
	guard   Guard
	service Service
}

// Guard описывает интерфейс решения о доступе.
type Guard interface {
	Authorize(ctx context.Context, ident *models.Identity, p authz.Params) error
}

// Service описывает интерфейс бизнес-логики связок.
type Service interface {
	End(ctx context.Context, trainerUID, studentUID string) error
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
// @Summary Отчислить ученика
// @Description Переводит связку тренер-ученик в статус ended.
// @Tags Students
// @Produce json
// @Param studentID path string true "UID ученика"
// @Success 200 {object} response.Response "Связка завершена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет"
// @Failure 404 {object} response.ErrorResponse "Активная связка не найдена"
// @Router /students/{studentID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.remove"
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

	studentUID := chi.URLParam(r, "studentID")
	if studentUID == "" {
		log.Error("missing student id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing student id"))
		return
	}

	if err := h.service.End(r.Context(), ident.UserUID, studentUID); err != nil {
		log.Error("failed to end relationship", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	log.Info("student removed", slog.String("student_uid", studentUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"student_uid": studentUID,
	}))
}
