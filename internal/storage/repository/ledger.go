package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eldarvlg/trainer-platform/internal/models"
)

// CreatePaymentEvent добавляет запись в журнал платежей ученика.
// Журнал append-only: исходы существующих записей меняет только AmendLatestOutcome.
func (s *Storage) CreatePaymentEvent(ctx context.Context, event models.PaymentEvent) (int, error) {
	const op = "storage.CreatePaymentEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_events (id, student_uid, amount, occurred_on, kind, outcome, plan_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING seq`
	var seq int
	err := s.DB.QueryRowContext(ctx, query,
		event.ID, event.StudentUID, event.Amount, event.OccurredOn,
		string(event.Kind), string(event.Outcome), event.PlanID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return seq, nil
}

// ListPaymentEvents возвращает журнал платежей ученика по возрастанию даты.
// Ничьи по дате решает порядок вставки (seq).
func (s *Storage) ListPaymentEvents(ctx context.Context, studentUID string) ([]models.PaymentEvent, error) {
	const op = "storage.ListPaymentEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT seq, id, student_uid, amount, occurred_on, kind, outcome, plan_id
			  FROM payment_events
			  WHERE student_uid = $1
			  ORDER BY occurred_on, seq`
	rows, err := s.DB.QueryContext(ctx, query, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.PaymentEvent
	for rows.Next() {
		var item models.PaymentEvent
		var kind, outcome string
		if err := rows.Scan(&item.Seq, &item.ID, &item.StudentUID, &item.Amount,
			&item.OccurredOn, &kind, &outcome, &item.PlanID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Kind = models.EventKind(kind)
		item.Outcome = models.EventOutcome(outcome)
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AmendLatestOutcome помечает последнее не оплаченное событие ученика
// как cancelled. Возвращает количество затронутых строк.
func (s *Storage) AmendLatestOutcome(ctx context.Context, studentUID string) (int, error) {
	const op = "storage.AmendLatestOutcome"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payment_events
			  SET outcome = $1
			  WHERE seq = (
				  SELECT seq FROM payment_events
				  WHERE student_uid = $2 AND outcome <> $3
				  ORDER BY occurred_on DESC, seq DESC
				  LIMIT 1)`
	result, err := s.DB.ExecContext(ctx, query,
		string(models.OutcomeCancelled), studentUID, string(models.OutcomePaid))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkCancelled ставит явный флаг отмены подписки ученика.
// Повторная отмена не является ошибкой.
func (s *Storage) MarkCancelled(ctx context.Context, studentUID string) error {
	const op = "storage.MarkCancelled"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_cancellations (student_uid)
			  VALUES ($1)
			  ON CONFLICT (student_uid) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, studentUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsCancelled проверяет наличие явного флага отмены подписки ученика.
func (s *Storage) IsCancelled(ctx context.Context, studentUID string) (bool, error) {
	const op = "storage.IsCancelled"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(
				  SELECT 1 FROM subscription_cancellations WHERE student_uid = $1)`
	if err := s.DB.QueryRowContext(ctx, query, studentUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GetPlan возвращает тарифный план по его ID.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.MembershipPlan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, recurrence_months
			  FROM membership_plans
			  WHERE id = $1`
	var plan models.MembershipPlan
	if err := s.DB.QueryRowContext(ctx, query, id).
		Scan(&plan.ID, &plan.Name, &plan.Price, &plan.RecurrenceMonths); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}

// CreatePlan сохраняет новый тарифный план и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, plan models.MembershipPlan) (int, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO membership_plans (name, price, recurrence_months)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Price, plan.RecurrenceMonths).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPlans возвращает все тарифные планы.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.MembershipPlan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, recurrence_months
			  FROM membership_plans
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MembershipPlan
	for rows.Next() {
		var item models.MembershipPlan
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.RecurrenceMonths); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
