// Package billing записывает исходы платежей в журнал и отдает производные
// данные биллинга. Сами платежи проводятся внешней системой: здесь только
// фиксация исходов, их интерпретация и явная отмена подписки.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eldarvlg/trainer-platform/internal/models"
	"github.com/eldarvlg/trainer-platform/internal/services/entitlement"
)

// Repository определяет методы хранилища для журнала платежей и планов.
type Repository interface {
	CreatePaymentEvent(ctx context.Context, event models.PaymentEvent) (int, error)
	ListPaymentEvents(ctx context.Context, studentUID string) ([]models.PaymentEvent, error)
	AmendLatestOutcome(ctx context.Context, studentUID string) (int, error)
	MarkCancelled(ctx context.Context, studentUID string) error
	CreatePlan(ctx context.Context, plan models.MembershipPlan) (int, error)
	ListPlans(ctx context.Context) ([]*models.MembershipPlan, error)
}

// Publisher публикует доменные события биллинга для консьюмеров уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику биллинга.
type Service struct {
	repo      Repository
	deriver   *entitlement.Deriver
	publisher Publisher
	log       *slog.Logger
}

// New создает новый Service.
func New(repo Repository, deriver *entitlement.Deriver, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		deriver:   deriver,
		publisher: publisher,
		log:       log,
	}
}

// RecordEvent добавляет платежное событие в журнал ученика, сбрасывает
// кеш производной подписки и публикует уведомление. Ошибка публикации
// не откатывает запись: журнал уже источник истины.
func (s *Service) RecordEvent(ctx context.Context, req models.DummyPaymentEvent) (string, error) {
	const op = "billing.RecordEvent"

	occurredOn, err := time.Parse("02-01-2006", req.OccurredOn)
	if err != nil {
		return "", fmt.Errorf("%s: invalid occurred_on: %w", op, err)
	}

	event := models.PaymentEvent{
		ID:         uuid.New().String(),
		StudentUID: req.StudentUID,
		Amount:     req.Amount,
		OccurredOn: occurredOn,
		Kind:       models.EventKind(req.Kind),
		Outcome:    models.EventOutcome(req.Outcome),
		PlanID:     req.PlanID,
	}
	if _, err := s.repo.CreatePaymentEvent(ctx, event); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment event recorded",
		slog.String("event_id", event.ID), slog.String("student_uid", event.StudentUID))

	s.deriver.Invalidate(event.StudentUID)

	if err := s.publisher.Publish("payment.recorded", event); err != nil {
		s.log.Warn("failed to publish payment event", slog.Any("err", err))
	}
	return event.ID, nil
}

// Cancel ставит явный флаг отмены подписки ученика и помечает последнее
// не оплаченное событие журнала как cancelled. Оплаченные исходы не
// переписываются: журнал хранит историю как есть.
func (s *Service) Cancel(ctx context.Context, studentUID string) error {
	const op = "billing.Cancel"

	if err := s.repo.MarkCancelled(ctx, studentUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.AmendLatestOutcome(ctx, studentUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription cancelled", slog.String("student_uid", studentUID))

	s.deriver.Invalidate(studentUID)

	if err := s.publisher.Publish("subscription.cancelled", map[string]string{
		"student_uid": studentUID,
	}); err != nil {
		s.log.Warn("failed to publish cancellation", slog.Any("err", err))
	}
	return nil
}

// ListEvents возвращает журнал платежей ученика, новые события сверху.
func (s *Service) ListEvents(ctx context.Context, studentUID string) ([]models.PaymentEvent, error) {
	events, err := s.repo.ListPaymentEvents(ctx, studentUID)
	if err != nil {
		return nil, err
	}
	// Хранилище отдает по возрастанию даты, биллинговые списки показывают
	// последние события первыми.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// Subscription возвращает производную подписку ученика.
func (s *Service) Subscription(ctx context.Context, studentUID string) (*models.Subscription, error) {
	return s.deriver.ForStudent(ctx, studentUID)
}

// CreatePlan сохраняет новый тарифный план.
func (s *Service) CreatePlan(ctx context.Context, req models.DummyMembershipPlan) (int, error) {
	return s.repo.CreatePlan(ctx, models.MembershipPlan{
		Name:             req.Name,
		Price:            req.Price,
		RecurrenceMonths: req.RecurrenceMonths,
	})
}

// ListPlans возвращает все тарифные планы.
func (s *Service) ListPlans(ctx context.Context) ([]*models.MembershipPlan, error) {
	return s.repo.ListPlans(ctx)
}
