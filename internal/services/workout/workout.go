// Package workout содержит бизнес-логику планов тренировок.
// Создание плана с днями и упражнениями — составная запись: она идет
// через координатор, и при любом сбое уже записанные части удаляются.
package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/txn"
)

// Repository определяет методы хранилища для планов тренировок.
type Repository interface {
	CreateWorkoutPlan(ctx context.Context, plan models.WorkoutPlan) (int, error)
	RemoveWorkoutPlan(ctx context.Context, id int) error
	CreateWorkoutDay(ctx context.Context, day models.WorkoutDay) (int, error)
	RemoveWorkoutDay(ctx context.Context, id int) error
	CreateWorkoutExercises(ctx context.Context, exercises []models.WorkoutExercise) error
	RemoveWorkoutExercisesByDay(ctx context.Context, dayID int) error
	ListWorkoutPlans(ctx context.Context, studentUID string) ([]*models.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, id int) (*models.WorkoutPlan, error)
	CreateWorkoutSession(ctx context.Context, session models.WorkoutSession) (int, error)
	GetWorkoutSession(ctx context.Context, id int) (*models.WorkoutSession, error)
	CompleteWorkoutSession(ctx context.Context, id int, completedAt time.Time,
		durationMinutes int, notes, mood string) (int, error)
	ListWorkoutSessions(ctx context.Context, studentUID string) ([]*models.WorkoutSession, error)
	CreateExerciseLog(ctx context.Context, entry models.ExerciseLog) (int, error)
	ListExerciseLogs(ctx context.Context, sessionID int) ([]*models.ExerciseLog, error)
}

// Service реализует операции над планами тренировок.
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

// CreatePlan создает план тренировок вместе с днями и упражнениями как одно
// действие. Дочерние записи всегда ссылаются на родителя, созданного раньше
// в том же действии; при сбое любого шага координатор удаляет уже записанное
// в обратном порядке и наружу не утекает частичное состояние.
func (s *Service) CreatePlan(ctx context.Context, trainerUID string, req models.DummyWorkoutPlan) (int, error) {
	const op = "workout.CreatePlan"

	var planID int
	action := txn.NewAction(s.log)

	action.Add(txn.Step{
		Name: "create plan",
		Do: func(ctx context.Context) error {
			id, err := s.repo.CreateWorkoutPlan(ctx, models.WorkoutPlan{
				StudentUID:  req.StudentUID,
				TrainerUID:  trainerUID,
				Name:        req.Name,
				Description: req.Description,
				IsActive:    true,
			})
			if err != nil {
				return err
			}
			planID = id
			return nil
		},
		Compensate: func(ctx context.Context) error {
			return s.repo.RemoveWorkoutPlan(ctx, planID)
		},
	})

	for index, day := range req.Schedule {
		day := day
		index := index
		var dayID int

		action.Add(txn.Step{
			Name: fmt.Sprintf("create day %d", index),
			Do: func(ctx context.Context) error {
				id, err := s.repo.CreateWorkoutDay(ctx, models.WorkoutDay{
					PlanID:     planID,
					DayName:    day.DayName,
					Focus:      day.Focus,
					OrderIndex: index,
					IsRestDay:  day.IsRestDay,
				})
				if err != nil {
					return err
				}
				dayID = id
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.RemoveWorkoutDay(ctx, dayID)
			},
		})

		if len(day.Exercises) > 0 {
			exercises := day.Exercises
			action.Add(txn.Step{
				Name: fmt.Sprintf("create exercises for day %d", index),
				Do: func(ctx context.Context) error {
					rows := make([]models.WorkoutExercise, 0, len(exercises))
					for idx, ex := range exercises {
						rows = append(rows, models.WorkoutExercise{
							DayID:       dayID,
							Name:        ex.Name,
							Sets:        ex.Sets,
							Reps:        ex.Reps,
							RestSeconds: ex.RestSeconds,
							OrderIndex:  idx,
						})
					}
					return s.repo.CreateWorkoutExercises(ctx, rows)
				},
				Compensate: func(ctx context.Context) error {
					return s.repo.RemoveWorkoutExercisesByDay(ctx, dayID)
				},
			})
		}
	}

	if err := action.Run(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("workout plan created", slog.Int("plan_id", planID),
		slog.String("student_uid", req.StudentUID))
	return planID, nil
}

// ListPlans возвращает планы тренировок ученика.
func (s *Service) ListPlans(ctx context.Context, studentUID string) ([]*models.WorkoutPlan, error) {
	return s.repo.ListWorkoutPlans(ctx, studentUID)
}
