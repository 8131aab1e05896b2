package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

// CreateWorkoutSession вставляет открытую сессию тренировки и возвращает её ID.
func (s *Storage) CreateWorkoutSession(ctx context.Context, session models.WorkoutSession) (int, error) {
	const op = "storage.CreateWorkoutSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO workout_sessions (student_uid, plan_id, day_id, started_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		session.StudentUID, session.PlanID, session.DayID, session.StartedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetWorkoutSession возвращает сессию по ID или nil, если её нет.
func (s *Storage) GetWorkoutSession(ctx context.Context, id int) (*models.WorkoutSession, error) {
	const op = "storage.GetWorkoutSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, plan_id, day_id, started_at, completed_at,
					 duration_minutes, notes, mood
			  FROM workout_sessions
			  WHERE id = $1`
	var session models.WorkoutSession
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.StudentUID,
		&session.PlanID, &session.DayID, &session.StartedAt, &session.CompletedAt,
		&session.DurationMinutes, &session.Notes, &session.Mood)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// CompleteWorkoutSession закрывает сессию и возвращает число обновленных строк.
// Уже закрытая сессия повторно не переписывается.
func (s *Storage) CompleteWorkoutSession(ctx context.Context, id int, completedAt time.Time,
	durationMinutes int, notes, mood string) (int, error) {
	const op = "storage.CompleteWorkoutSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE workout_sessions
			  SET completed_at = $2, duration_minutes = $3, notes = $4, mood = $5
			  WHERE id = $1 AND completed_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, id, completedAt, durationMinutes, notes, mood)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// ListWorkoutSessions возвращает сессии ученика, новые сверху.
func (s *Storage) ListWorkoutSessions(ctx context.Context, studentUID string) ([]*models.WorkoutSession, error) {
	const op = "storage.ListWorkoutSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, plan_id, day_id, started_at, completed_at,
					 duration_minutes, notes, mood
			  FROM workout_sessions
			  WHERE student_uid = $1
			  ORDER BY started_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WorkoutSession
	for rows.Next() {
		var item models.WorkoutSession
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.PlanID, &item.DayID,
			&item.StartedAt, &item.CompletedAt, &item.DurationMinutes,
			&item.Notes, &item.Mood); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateExerciseLog вставляет подход упражнения и возвращает его ID.
func (s *Storage) CreateExerciseLog(ctx context.Context, entry models.ExerciseLog) (int, error) {
	const op = "storage.CreateExerciseLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO exercise_logs (session_id, exercise_id, set_number, weight_kg,
										 reps, is_completed, rpe, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.SessionID, entry.ExerciseID, entry.SetNumber, entry.WeightKg,
		entry.Reps, entry.IsCompleted, entry.RPE, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListExerciseLogs возвращает подходы сессии в порядке записи.
func (s *Storage) ListExerciseLogs(ctx context.Context, sessionID int) ([]*models.ExerciseLog, error) {
	const op = "storage.ListExerciseLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, session_id, exercise_id, set_number, weight_kg, reps,
					 is_completed, rpe, notes, created_at
			  FROM exercise_logs
			  WHERE session_id = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExerciseLog
	for rows.Next() {
		var item models.ExerciseLog
		if err := rows.Scan(&item.ID, &item.SessionID, &item.ExerciseID, &item.SetNumber,
			&item.WeightKg, &item.Reps, &item.IsCompleted, &item.RPE,
			&item.Notes, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
