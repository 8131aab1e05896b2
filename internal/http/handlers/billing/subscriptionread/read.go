// Package subscriptionread реализует HTTP-обработчик чтения статуса подписки.
//
// Статус не хранится: он выводится из журнала платежей на каждое чтение.
package subscriptionread

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

// Handler управляет HTTP-запросами на чтение подписки.
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
	Subscription(ctx context.Context, studentUID string) (*models.Subscription, error)
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
// @Summary Статус подписки ученика
// @Description Выводит текущий статус подписки из журнала платежей.
// @Tags Billing
// @Produce json
// @Param student_uid query string false "UID ученика (по умолчанию сам вызывающий)"
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Не ваш ученик"
// @Router /billing/subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.subscriptionread"
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

	sub, err := h.service.Subscription(r.Context(), studentUID)
	if err != nil {
		log.Error("failed to derive subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not derive subscription"))
		return
	}

	log.Info("subscription derived", slog.String("status", string(sub.Status)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
	}))
}
