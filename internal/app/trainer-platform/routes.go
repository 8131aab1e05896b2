// Package trainerplatform предоставляет маршруты для основного приложения.
package trainerplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eldarvlg/trainer-platform/internal/http/handlers/auth/login"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/auth/register"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/auth/resetpassword"
	billingcancel "github.com/eldarvlg/trainer-platform/internal/http/handlers/billing/cancel"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/billing/eventcreate"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/billing/eventlist"
	billingplancreate "github.com/eldarvlg/trainer-platform/internal/http/handlers/billing/plancreate"
	billingplanlist "github.com/eldarvlg/trainer-platform/internal/http/handlers/billing/planlist"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/billing/subscriptionread"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/health"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/progress/measurementcreate"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/progress/measurementlist"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/student/add"
	studentlist "github.com/eldarvlg/trainer-platform/internal/http/handlers/student/list"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/student/remove"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/user/profile"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/exerciselogcreate"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/exerciseloglist"
	workoutplancreate "github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/plancreate"
	workoutplanlist "github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/planlist"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/sessioncomplete"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/sessionlist"
	"github.com/eldarvlg/trainer-platform/internal/http/handlers/workout/sessionstart"
	"github.com/eldarvlg/trainer-platform/internal/http/middlewarectx"
	authservice "github.com/eldarvlg/trainer-platform/internal/services/auth"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
	billingservice "github.com/eldarvlg/trainer-platform/internal/services/billing"
	"github.com/eldarvlg/trainer-platform/internal/services/identity"
	progressservice "github.com/eldarvlg/trainer-platform/internal/services/progress"
	relationshipservice "github.com/eldarvlg/trainer-platform/internal/services/relationship"
	workoutservice "github.com/eldarvlg/trainer-platform/internal/services/workout"
	"github.com/eldarvlg/trainer-platform/internal/storage/repository"
)

// Services собирает сервисы, нужные маршрутам.
type Services struct {
	Auth         *authservice.Service
	Relationship *relationshipservice.Service
	Billing      *billingservice.Service
	Workout      *workoutservice.Service
	Progress     *progressservice.Service
	Storage      *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, resolver *identity.Resolver, guard *authz.Guard, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(resolver, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/students", add.New(logger, guard, s.Relationship).ServeHTTP)
			r.Get("/students", studentlist.New(logger, guard, s.Relationship).ServeHTTP)
			r.Delete("/students/{studentID}", remove.New(logger, guard, s.Relationship).ServeHTTP)

			r.Post("/billing/events", eventcreate.New(logger, guard, s.Billing).ServeHTTP)
			r.Get("/billing/events", eventlist.New(logger, guard, s.Billing).ServeHTTP)
			r.Get("/billing/subscription", subscriptionread.New(logger, guard, s.Billing).ServeHTTP)
			r.Delete("/billing/subscription/{studentID}", billingcancel.New(logger, guard, s.Billing).ServeHTTP)
			r.Post("/billing/plans", billingplancreate.New(logger, guard, s.Billing).ServeHTTP)
			r.Get("/billing/plans", billingplanlist.New(logger, guard, s.Billing).ServeHTTP)

			r.Post("/workouts", workoutplancreate.New(logger, guard, s.Workout).ServeHTTP)
			r.Get("/workouts", workoutplanlist.New(logger, guard, s.Workout).ServeHTTP)
			r.Post("/workouts/sessions", sessionstart.New(logger, guard, s.Workout).ServeHTTP)
			r.Get("/workouts/sessions", sessionlist.New(logger, guard, s.Workout).ServeHTTP)
			r.Patch("/workouts/sessions/{sessionID}", sessioncomplete.New(logger, guard, s.Workout).ServeHTTP)
			r.Post("/workouts/logs", exerciselogcreate.New(logger, guard, s.Workout).ServeHTTP)
			r.Get("/workouts/logs", exerciseloglist.New(logger, guard, s.Workout).ServeHTTP)

			r.Get("/users/me", profile.New(logger, s.Auth).ServeHTTP)
			r.Post("/auth/reset-password", resetpassword.New(logger, s.Auth).ServeHTTP)

			r.Post("/progress/measurements", measurementcreate.New(logger, guard, s.Progress).ServeHTTP)
			r.Get("/progress/measurements", measurementlist.New(logger, guard, s.Progress).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, s.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
