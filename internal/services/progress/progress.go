// Package progress содержит бизнес-логику замеров прогресса учеников.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

// Repository определяет методы хранилища для замеров.
type Repository interface {
	CreateMeasurement(ctx context.Context, m models.Measurement) (int, error)
	ListMeasurements(ctx context.Context, studentUID string) ([]*models.Measurement, error)
}

// Service реализует операции над замерами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет замер ученика.
func (s *Service) Create(ctx context.Context, studentUID string, req models.DummyMeasurement) (int, error) {
	const op = "progress.Create"

	measuredOn, err := time.Parse("02-01-2006", req.MeasuredOn)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid measured_on: %w", op, err)
	}

	id, err := s.repo.CreateMeasurement(ctx, models.Measurement{
		StudentUID: studentUID,
		MeasuredOn: measuredOn,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		Notes:      req.Notes,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("measurement created", slog.Int("id", id),
		slog.String("student_uid", studentUID))
	return id, nil
}

// List возвращает замеры ученика.
func (s *Service) List(ctx context.Context, studentUID string) ([]*models.Measurement, error) {
	return s.repo.ListMeasurements(ctx, studentUID)
}
