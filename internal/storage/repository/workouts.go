package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

// CreateWorkoutPlan вставляет план тренировок и возвращает его ID.
func (s *Storage) CreateWorkoutPlan(ctx context.Context, plan models.WorkoutPlan) (int, error) {
	const op = "storage.CreateWorkoutPlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO workout_plans (student_uid, trainer_uid, name, description, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		plan.StudentUID, plan.TrainerUID, plan.Name, plan.Description, plan.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveWorkoutPlan удаляет план тренировок по ID. Удаление отсутствующей
// записи не является ошибкой, чтобы откат можно было повторять.
func (s *Storage) RemoveWorkoutPlan(ctx context.Context, id int) error {
	const op = "storage.RemoveWorkoutPlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM workout_plans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateWorkoutDay вставляет день плана и возвращает его ID.
func (s *Storage) CreateWorkoutDay(ctx context.Context, day models.WorkoutDay) (int, error) {
	const op = "storage.CreateWorkoutDay"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO workout_days (plan_id, day_name, focus, order_index, is_rest_day)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		day.PlanID, day.DayName, day.Focus, day.OrderIndex, day.IsRestDay).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveWorkoutDay удаляет день плана по ID, отсутствие записи не ошибка.
func (s *Storage) RemoveWorkoutDay(ctx context.Context, id int) error {
	const op = "storage.RemoveWorkoutDay"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM workout_days WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateWorkoutExercises вставляет упражнения дня одним запросом на каждую запись.
func (s *Storage) CreateWorkoutExercises(ctx context.Context, exercises []models.WorkoutExercise) error {
	const op = "storage.CreateWorkoutExercises"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO workout_exercises (day_id, name, sets, reps, rest_seconds, order_index)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	for _, ex := range exercises {
		if _, err := s.DB.ExecContext(ctx, query,
			ex.DayID, ex.Name, ex.Sets, ex.Reps, ex.RestSeconds, ex.OrderIndex); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// RemoveWorkoutExercisesByDay удаляет все упражнения дня, отсутствие записей не ошибка.
func (s *Storage) RemoveWorkoutExercisesByDay(ctx context.Context, dayID int) error {
	const op = "storage.RemoveWorkoutExercisesByDay"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM workout_exercises WHERE day_id = $1`, dayID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetWorkoutPlan возвращает план тренировок по ID или nil, если его нет.
func (s *Storage) GetWorkoutPlan(ctx context.Context, id int) (*models.WorkoutPlan, error) {
	const op = "storage.GetWorkoutPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, trainer_uid, name, description, is_active, created_at
			  FROM workout_plans
			  WHERE id = $1`
	var plan models.WorkoutPlan
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&plan.ID, &plan.StudentUID,
		&plan.TrainerUID, &plan.Name, &plan.Description, &plan.IsActive, &plan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}

// ListWorkoutPlans возвращает планы тренировок ученика, новые сверху.
func (s *Storage) ListWorkoutPlans(ctx context.Context, studentUID string) ([]*models.WorkoutPlan, error) {
	const op = "storage.ListWorkoutPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, trainer_uid, name, description, is_active, created_at
			  FROM workout_plans
			  WHERE student_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WorkoutPlan
	for rows.Next() {
		var item models.WorkoutPlan
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.TrainerUID, &item.Name,
			&item.Description, &item.IsActive, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
