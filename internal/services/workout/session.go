package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

// StartSession открывает сессию тренировки ученика по дню его плана.
// План должен принадлежать самому ученику: чужой или несуществующий план
// неразличимы для вызывающего и дают одну и ту же ошибку.
func (s *Service) StartSession(ctx context.Context, studentUID string, req models.DummyWorkoutSession) (int, error) {
	const op = "workout.StartSession"

	plan, err := s.repo.GetWorkoutPlan(ctx, req.PlanID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if plan == nil || plan.StudentUID != studentUID {
		return 0, fmt.Errorf("%s: plan %d: %w", op, req.PlanID, errs.ErrTargetNotFound)
	}

	id, err := s.repo.CreateWorkoutSession(ctx, models.WorkoutSession{
		StudentUID: studentUID,
		PlanID:     req.PlanID,
		DayID:      req.DayID,
		StartedAt:  time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("workout session started", slog.Int("session_id", id),
		slog.String("student_uid", studentUID))
	return id, nil
}

// CompleteSession закрывает сессию ученика с итогами тренировки.
// Повторное закрытие уже завершенной сессии дает ErrTargetNotFound.
func (s *Service) CompleteSession(ctx context.Context, studentUID string, sessionID int, req models.DummyCompleteSession) error {
	const op = "workout.CompleteSession"

	session, err := s.repo.GetWorkoutSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if session == nil || session.StudentUID != studentUID {
		return fmt.Errorf("%s: session %d: %w", op, sessionID, errs.ErrTargetNotFound)
	}

	affected, err := s.repo.CompleteWorkoutSession(ctx, sessionID, time.Now().UTC(),
		req.DurationMinutes, req.Notes, req.Mood)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: session %d already completed: %w", op, sessionID, errs.ErrTargetNotFound)
	}
	s.log.Info("workout session completed", slog.Int("session_id", sessionID))
	return nil
}

// ListSessions возвращает сессии ученика, новые сверху.
func (s *Service) ListSessions(ctx context.Context, studentUID string) ([]*models.WorkoutSession, error) {
	return s.repo.ListWorkoutSessions(ctx, studentUID)
}

// LogExercise записывает подход упражнения в рамках открытой сессии ученика.
func (s *Service) LogExercise(ctx context.Context, studentUID string, req models.DummyExerciseLog) (int, error) {
	const op = "workout.LogExercise"

	session, err := s.repo.GetWorkoutSession(ctx, req.SessionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if session == nil || session.StudentUID != studentUID {
		return 0, fmt.Errorf("%s: session %d: %w", op, req.SessionID, errs.ErrTargetNotFound)
	}

	id, err := s.repo.CreateExerciseLog(ctx, models.ExerciseLog{
		SessionID:   req.SessionID,
		ExerciseID:  req.ExerciseID,
		SetNumber:   req.SetNumber,
		WeightKg:    req.WeightKg,
		Reps:        req.Reps,
		IsCompleted: true,
		RPE:         req.RPE,
		Notes:       req.Notes,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("exercise set logged", slog.Int("log_id", id),
		slog.Int("session_id", req.SessionID))
	return id, nil
}

// SessionOwner возвращает UID ученика, которому принадлежит сессия.
// Используется обработчиками, чтобы определить цель проверки доступа,
// когда в запросе указана только сессия.
func (s *Service) SessionOwner(ctx context.Context, sessionID int) (string, error) {
	const op = "workout.SessionOwner"

	session, err := s.repo.GetWorkoutSession(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if session == nil {
		return "", fmt.Errorf("%s: session %d: %w", op, sessionID, errs.ErrTargetNotFound)
	}
	return session.StudentUID, nil
}

// ListExerciseLogs возвращает подходы сессии в порядке записи.
func (s *Service) ListExerciseLogs(ctx context.Context, sessionID int) ([]*models.ExerciseLog, error) {
	return s.repo.ListExerciseLogs(ctx, sessionID)
}
