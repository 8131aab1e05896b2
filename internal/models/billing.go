package models

import "time"

// EventKind тип платежного события в журнале.
type EventKind string

const (
	// KindFirstPayment первый платеж ученика, фиксирует дату вступления.
	KindFirstPayment EventKind = "first_payment"
	// KindRenewal продление подписки.
	KindRenewal EventKind = "renewal"
)

// EventOutcome исход платежного события, решенный внешней системой.
// Движок только записывает и интерпретирует исходы, сам платежи не проводит.
type EventOutcome string

const (
	OutcomePaid      EventOutcome = "paid"
	OutcomePending   EventOutcome = "pending"
	OutcomeOverdue   EventOutcome = "overdue"
	OutcomeCancelled EventOutcome = "cancelled"
)

// PaymentEvent запись журнала платежей ученика. Журнал append-only:
// исход события меняется только явной отменой подписки, записи не удаляются.
type PaymentEvent struct {
	Seq        int          // Порядок вставки, решает ничьи по дате
	ID         string       // UUID события
	StudentUID string       // UID ученика
	Amount     float64      // Сумма платежа
	OccurredOn time.Time    // Дата события
	Kind       EventKind    // first_payment или renewal
	Outcome    EventOutcome // paid, pending, overdue, cancelled
	PlanID     int          // Тарифный план на момент события
}

// MembershipPlan тарифный план абонемента.
type MembershipPlan struct {
	ID               int     // Идентификатор плана
	Name             string  // Название плана
	Price            float64 // Цена за период
	RecurrenceMonths int     // Период в месяцах: 1 - месячный, 12 - годовой
}

// SubscriptionStatus производный статус подписки ученика.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionOverdue   SubscriptionStatus = "overdue"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionInactive  SubscriptionStatus = "inactive"
)

// Subscription производное состояние подписки ученика. Нигде не хранится:
// вычисляется из журнала платежей при каждом чтении и не должно расходиться
// с журналом.
type Subscription struct {
	StudentUID  string             `json:"student_uid"`
	PlanName    string             `json:"plan_name"`
	Status      SubscriptionStatus `json:"status"`
	JoinDate    *time.Time         `json:"join_date"`
	NextDueDate *time.Time         `json:"next_due_date"`
}

// DummyPaymentEvent используется для приёма платежного события из JSON-запроса.
// Дата приходит строкой, чтобы её можно было распарсить вручную.
type DummyPaymentEvent struct {
	StudentUID string  `json:"student_uid" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	OccurredOn string  `json:"occurred_on" validate:"required"` // Формат 02-01-2006
	Kind       string  `json:"kind" validate:"required,oneof=first_payment renewal"`
	Outcome    string  `json:"outcome" validate:"required,oneof=paid pending overdue cancelled"`
	PlanID     int     `json:"plan_id" validate:"required,gt=0"`
}

// DummyMembershipPlan используется для приёма нового тарифного плана.
type DummyMembershipPlan struct {
	Name             string  `json:"name" validate:"required"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	RecurrenceMonths int     `json:"recurrence_months" validate:"required,oneof=1 12"`
}
