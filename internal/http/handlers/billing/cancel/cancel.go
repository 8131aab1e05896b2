// Package cancel реализует HTTP-обработчик отмены подписки ученика.
//
// Отмена ставит явный флаг, который перекрывает любой исход последнего
// платежа, включая оплаченный. Снятие флага не предусмотрено.
package cancel

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

// Handler управляет HTTP-запросами на отмену подписки.
type Handler struct {
	log     *slog.Logger
	guard   Guard
	service Service
}

// Guard описывает интерфейс решения о доступе.
type Guard interface {
	Authorize(ctx context.Context, ident *models.Identity, p authz.Params) error
}

// Service описывает интерфейс бизнес-логики биллинга.
type Service interface {
	Cancel(ctx context.Context, studentUID string) error
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
// @Summary Отменить подписку ученика
// @Description Помечает подписку отмененной независимо от исхода последнего платежа.
// @Tags Billing
// @Produce json
// @Param studentID path string true "UID ученика"
// @Success 200 {object} response.Response "Подписка отменена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Не ваш ученик"
// @Router /billing/subscription/{studentID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.cancel"
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

	studentUID := chi.URLParam(r, "studentID")
	if studentUID == "" {
		log.Error("missing student id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing student id"))
		return
	}

	if err := h.guard.Authorize(r.Context(), ident, authz.Params{
		TargetStudentUID: studentUID,
	}); err != nil {
		log.Error("authorization denied", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	if err := h.service.Cancel(r.Context(), studentUID); err != nil {
		log.Error("failed to cancel subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel subscription"))
		return
	}

	log.Info("subscription cancelled", slog.String("student_uid", studentUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"student_uid": studentUID,
	}))
}
