// Package planlist реализует HTTP-обработчик списка тарифных планов.
package planlist

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

// Handler управляет HTTP-запросами на список тарифных планов.
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
	ListPlans(ctx context.Context) ([]*models.MembershipPlan, error)
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
// @Summary Список тарифных планов
// @Description Возвращает все тарифные планы платформы.
// @Tags Billing
// @Produce json
// @Success 200 {object} map[string]any "Список планов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /billing/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.planlist"
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

	if err := h.guard.Authorize(r.Context(), ident, authz.Params{}); err != nil {
		log.Error("authorization denied", sl.Err(err))
		response.AuthzError(w, r, err)
		return
	}

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list plans"))
		return
	}

	log.Info("plans listed", slog.Int("count", len(plans)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}
