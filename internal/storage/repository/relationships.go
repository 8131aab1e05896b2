package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

// CreateRelationship вставляет активную связку тренер-ученик.
// Уникальность активной пары держит частичный уникальный индекс в базе,
// поэтому два конкурентных запроса на одну пару не пройдут оба:
// нарушение уникальности транслируется в errs.ErrDuplicateRelationship.
func (s *Storage) CreateRelationship(ctx context.Context, trainerUID, studentUID string) (*models.Relationship, error) {
	const op = "storage.CreateRelationship"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO relationships (trainer_uid, student_uid, status)
			  VALUES ($1, $2, $3)
			  RETURNING id, started_at`
	rel := &models.Relationship{
		TrainerUID: trainerUID,
		StudentUID: studentUID,
		Status:     models.RelationshipActive,
	}
	err := s.DB.QueryRowContext(ctx, query, trainerUID, studentUID, models.RelationshipActive).
		Scan(&rel.ID, &rel.StartedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrDuplicateRelationship)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rel, nil
}

// EndRelationship переводит активную связку в статус ended, не удаляя запись.
// Возвращает количество затронутых строк.
func (s *Storage) EndRelationship(ctx context.Context, trainerUID, studentUID string) (int, error) {
	const op = "storage.EndRelationship"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE relationships
			  SET status = $1
			  WHERE trainer_uid = $2 AND student_uid = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query,
		models.RelationshipEnded, trainerUID, studentUID, models.RelationshipActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IsActiveRelationship проверяет, есть ли активная связка для пары.
func (s *Storage) IsActiveRelationship(ctx context.Context, trainerUID, studentUID string) (bool, error) {
	const op = "storage.IsActiveRelationship"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(
				  SELECT 1 FROM relationships
				  WHERE trainer_uid = $1 AND student_uid = $2 AND status = $3)`
	if err := s.DB.QueryRowContext(ctx, query,
		trainerUID, studentUID, models.RelationshipActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListStudents возвращает активных учеников тренера вместе с данными учетки.
func (s *Storage) ListStudents(ctx context.Context, trainerUID string) ([]*models.StudentInfo, error) {
	const op = "storage.ListStudents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.trainer_uid, r.student_uid, r.status, r.started_at,
				  u.username, u.email
			  FROM relationships r
			  JOIN users u ON u.uid = r.student_uid
			  WHERE r.trainer_uid = $1 AND r.status = $2
			  ORDER BY r.started_at`
	rows, err := s.DB.QueryContext(ctx, query, trainerUID, models.RelationshipActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.StudentInfo
	for rows.Next() {
		var item models.StudentInfo
		if err := rows.Scan(&item.ID, &item.TrainerUID, &item.StudentUID, &item.Status,
			&item.StartedAt, &item.Username, &item.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
