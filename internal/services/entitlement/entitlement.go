// Package entitlement выводит текущий статус подписки ученика из журнала
// платежей. Статус нигде не хранится: это чистая функция журнала на момент
// чтения, поэтому два места кода не могут разойтись в том, что значит
// "просрочено".
package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eldarvlg/trainer-platform/internal/lib/month"
	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

// LedgerRepository методы чтения журнала платежей.
type LedgerRepository interface {
	// ListPaymentEvents возвращает события ученика по возрастанию даты,
	// ничьи решает порядок вставки.
	ListPaymentEvents(ctx context.Context, studentUID string) ([]models.PaymentEvent, error)
	// IsCancelled проверяет явный флаг отмены подписки.
	IsCancelled(ctx context.Context, studentUID string) (bool, error)
	// GetPlan возвращает тарифный план или nil, если план не найден.
	GetPlan(ctx context.Context, id int) (*models.MembershipPlan, error)
}

// Cache описывает методы для кэширования производных подписок.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Deriver вычисляет подписку ученика по запросу, с кешированием результата.
// Кеш инвалидируется биллингом при каждой мутации журнала.
type Deriver struct {
	ledger LedgerRepository
	cache  Cache
	log    *slog.Logger
}

// NewDeriver создает новый Deriver.
func NewDeriver(ledger LedgerRepository, cache Cache, log *slog.Logger) *Deriver {
	return &Deriver{
		ledger: ledger,
		cache:  cache,
		log:    log,
	}
}

// Derive чистая функция вывода подписки из среза журнала.
// events должны быть отсортированы по возрастанию даты (ничьи по вставке);
// plan — тарифный план последнего события, cancelled — явный флаг отмены.
//
// Правила:
//   - пустой журнал: статус inactive, без даты вступления и плана;
//   - дата вступления — дата самого раннего события;
//   - статус зеркалит исход последнего события, но явный флаг отмены
//     перекрывает его, даже если последний исход paid (поведение исходной
//     системы сохранено сознательно, это продуктовое решение);
//   - следующая дата платежа — дата последнего события плюс период плана.
func Derive(studentUID string, events []models.PaymentEvent, plan *models.MembershipPlan, cancelled bool) models.Subscription {
	if len(events) == 0 {
		return models.Subscription{
			StudentUID: studentUID,
			Status:     models.SubscriptionInactive,
		}
	}

	joinDate := events[0].OccurredOn
	latest := events[len(events)-1]

	var status models.SubscriptionStatus
	switch {
	case cancelled:
		status = models.SubscriptionCancelled
	case latest.Outcome == models.OutcomePaid:
		status = models.SubscriptionActive
	case latest.Outcome == models.OutcomePending:
		status = models.SubscriptionPending
	case latest.Outcome == models.OutcomeOverdue:
		status = models.SubscriptionOverdue
	default:
		status = models.SubscriptionCancelled
	}

	recurrence := 1
	planName := ""
	if plan != nil {
		recurrence = plan.RecurrenceMonths
		planName = plan.Name
	}
	nextDue := month.NextDueDate(latest.OccurredOn, recurrence)

	return models.Subscription{
		StudentUID:  studentUID,
		PlanName:    planName,
		Status:      status,
		JoinDate:    &joinDate,
		NextDueDate: &nextDue,
	}
}

// ForStudent загружает журнал ученика и возвращает производную подписку,
// используя кеш или хранилище.
func (d *Deriver) ForStudent(ctx context.Context, studentUID string) (*models.Subscription, error) {
	const op = "entitlement.ForStudent"

	var cached models.Subscription
	cacheKey := cacheKey(studentUID)
	found, err := d.cache.Get(cacheKey, &cached)
	if err != nil {
		d.log.Warn("failed to read subscription cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	events, err := d.ledger.ListPaymentEvents(ctx, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cancelled, err := d.ledger.IsCancelled(ctx, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var plan *models.MembershipPlan
	if len(events) > 0 {
		plan, err = d.ledger.GetPlan(ctx, events[len(events)-1].PlanID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	sub := Derive(studentUID, events, plan, cancelled)
	if err := d.cache.Set(cacheKey, sub, time.Hour); err != nil {
		d.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return &sub, nil
}

// Invalidate сбрасывает кешированную подписку ученика. Вызывается биллингом
// после каждой мутации журнала, чтобы производное состояние не отставало.
func (d *Deriver) Invalidate(studentUID string) {
	cacheKey := cacheKey(studentUID)
	if err := d.cache.Invalidate(cacheKey); err != nil {
		d.log.Warn("failed to invalidate subscription cache",
			slog.String("key", cacheKey), sl.Err(err))
	}
}

func cacheKey(studentUID string) string {
	return fmt.Sprintf("subscription:%s", studentUID)
}
