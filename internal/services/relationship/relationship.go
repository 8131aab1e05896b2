// Package relationship содержит бизнес-логику связок тренер-ученик.
package relationship

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

// Repository определяет методы хранилища для связок и пользователей.
type Repository interface {
	// CreateRelationship вставляет активную связку, возвращает
	// errs.ErrDuplicateRelationship при нарушении уникальности пары.
	CreateRelationship(ctx context.Context, trainerUID, studentUID string) (*models.Relationship, error)
	// EndRelationship переводит связку в ended, возвращает число затронутых строк.
	EndRelationship(ctx context.Context, trainerUID, studentUID string) (int, error)
	// IsActiveRelationship проверяет активность связки.
	IsActiveRelationship(ctx context.Context, trainerUID, studentUID string) (bool, error)
	// ListStudents возвращает активных учеников тренера.
	ListStudents(ctx context.Context, trainerUID string) ([]*models.StudentInfo, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service реализует операции над графом связок.
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

// Create добавляет ученика тренеру. Цель должна существовать и иметь роль
// ученика; дубликат активной связки дает errs.ErrDuplicateRelationship.
func (s *Service) Create(ctx context.Context, trainerUID, studentUID string) (*models.Relationship, error) {
	const op = "relationship.Create"

	student, err := s.repo.GetUser(ctx, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrTargetNotFound)
	}

	rel, err := s.repo.CreateRelationship(ctx, trainerUID, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("relationship created",
		slog.String("trainer_uid", trainerUID), slog.String("student_uid", studentUID))
	return rel, nil
}

// End отчисляет ученика: связка переводится в ended, история сохраняется.
// Уже возвращенные исторические данные это не отзывает, но новые чтения
// и записи блокируются сразу.
func (s *Service) End(ctx context.Context, trainerUID, studentUID string) error {
	const op = "relationship.End"

	affected, err := s.repo.EndRelationship(ctx, trainerUID, studentUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrTargetNotFound)
	}
	s.log.Info("relationship ended",
		slog.String("trainer_uid", trainerUID), slog.String("student_uid", studentUID))
	return nil
}

// IsActive проверяет активность связки для пары тренер-ученик.
func (s *Service) IsActive(ctx context.Context, trainerUID, studentUID string) (bool, error) {
	return s.repo.IsActiveRelationship(ctx, trainerUID, studentUID)
}

// ListStudents возвращает активных учеников тренера.
func (s *Service) ListStudents(ctx context.Context, trainerUID string) ([]*models.StudentInfo, error) {
	return s.repo.ListStudents(ctx, trainerUID)
}
