// Package trainerplatform собирает и запускает HTTP-приложение платформы.
package trainerplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/eldarvlg/trainer-platform/internal/cache"
	"github.com/eldarvlg/trainer-platform/internal/config"
	"github.com/eldarvlg/trainer-platform/internal/lib/jwt"
	"github.com/eldarvlg/trainer-platform/internal/lib/rabbitmq"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/migrations"
	authservice "github.com/eldarvlg/trainer-platform/internal/services/auth"
	"github.com/eldarvlg/trainer-platform/internal/services/authz"
	billingservice "github.com/eldarvlg/trainer-platform/internal/services/billing"
	"github.com/eldarvlg/trainer-platform/internal/services/entitlement"
	"github.com/eldarvlg/trainer-platform/internal/services/identity"
	progressservice "github.com/eldarvlg/trainer-platform/internal/services/progress"
	relationshipservice "github.com/eldarvlg/trainer-platform/internal/services/relationship"
	workoutservice "github.com/eldarvlg/trainer-platform/internal/services/workout"
	"github.com/eldarvlg/trainer-platform/internal/storage/repository"
)

// App приложение с HTTP-сервером и подключениями к хранилищам.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	publisher *rabbitmq.Publisher
}

// New собирает приложение: хранилище, миграции, кеш, брокер, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	publisher, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.Exchange)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	resolver := identity.NewResolver(jwtMaker)

	deriver := entitlement.NewDeriver(db, cacheRedis, logger)
	relationshipService := relationshipservice.New(db, logger)
	guard := authz.New(relationshipService, deriver, logger)

	authService := authservice.New(db, jwtMaker)
	billingService := billingservice.New(db, deriver, publisher, logger)
	workoutService := workoutservice.New(db, logger)
	progressService := progressservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, resolver, guard, Services{
		Auth:         authService,
		Relationship: relationshipService,
		Billing:      billingService,
		Workout:      workoutService,
		Progress:     progressService,
		Storage:      db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
		publisher: publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.publisher.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
