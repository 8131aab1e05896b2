package repository

import (
	"context"
	"fmt"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

// CreateMeasurement сохраняет замер ученика и возвращает его ID.
func (s *Storage) CreateMeasurement(ctx context.Context, m models.Measurement) (int, error) {
	const op = "storage.CreateMeasurement"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO measurements (student_uid, measured_on, weight_kg, body_fat_pct, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		m.StudentUID, m.MeasuredOn, m.WeightKg, m.BodyFatPct, m.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMeasurements возвращает замеры ученика по возрастанию даты.
func (s *Storage) ListMeasurements(ctx context.Context, studentUID string) ([]*models.Measurement, error) {
	const op = "storage.ListMeasurements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, measured_on, weight_kg, body_fat_pct, notes
			  FROM measurements
			  WHERE student_uid = $1
			  ORDER BY measured_on`
	rows, err := s.DB.QueryContext(ctx, query, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Measurement
	for rows.Next() {
		var item models.Measurement
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.MeasuredOn,
			&item.WeightKg, &item.BodyFatPct, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
