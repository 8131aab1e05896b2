// Package txn реализует координатор составных записей с компенсирующим откатом.
//
// Действие состоит из упорядоченных шагов. Шаги выполняются по порядку;
// если любой шаг падает, уже зафиксированные шаги компенсируются в обратном
// порядке фиксации, и хранилище остается как будто действие не начиналось.
// Это не полная транзакционная изоляция: параллельные несвязанные действия
// не затрагиваются, откатываются только собственные частичные эффекты.
package txn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eldarvlg/trainer-platform/internal/lib/sl"
)

// Step один шаг действия: запись и её компенсация.
// Компенсация обязана быть идемпотентной: повтор отката после сбоя
// не должен падать, если часть шагов уже откатана.
type Step struct {
	Name       string
	Do         func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Action упорядоченный список шагов одной логической записи.
// Список компенсаций собирается по мере фиксации шагов, поэтому порядок
// отката всегда обратен порядку фиксации: дочерние записи уходят раньше
// родительских и висячих ссылок не остается.
type Action struct {
	log       *slog.Logger
	steps     []Step
	committed []Step
}

// NewAction создает пустое действие.
func NewAction(log *slog.Logger) *Action {
	return &Action{log: log}
}

// Add добавляет шаг в конец действия.
func (a *Action) Add(step Step) {
	a.steps = append(a.steps, step)
}

// Run выполняет шаги по порядку. Любая ошибка шага трактуется как полная
// отмена действия: зафиксированные шаги компенсируются, ошибка возвращается
// наружу уже после отката. Частично выполненное состояние наружу не видно.
func (a *Action) Run(ctx context.Context) error {
	const op = "txn.Run"
	for _, step := range a.steps {
		if err := step.Do(ctx); err != nil {
			a.log.Error("action step failed, rolling back",
				slog.String("step", step.Name), sl.Err(err))
			if rbErr := a.Rollback(ctx); rbErr != nil {
				return fmt.Errorf("%s: step %s: %w (rollback: %w)", op, step.Name, err, rbErr)
			}
			return fmt.Errorf("%s: step %s: %w", op, step.Name, err)
		}
		a.committed = append(a.committed, step)
	}
	a.committed = nil
	return nil
}

// Rollback компенсирует зафиксированные шаги в обратном порядке.
// Ошибка одной компенсации не останавливает остальные; все ошибки
// объединяются. Повторный вызов ничего не делает.
func (a *Action) Rollback(ctx context.Context) error {
	var rbErrs []error
	for i := len(a.committed) - 1; i >= 0; i-- {
		step := a.committed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			a.log.Error("compensation failed",
				slog.String("step", step.Name), sl.Err(err))
			rbErrs = append(rbErrs, fmt.Errorf("compensate %s: %w", step.Name, err))
		}
	}
	a.committed = nil
	return errors.Join(rbErrs...)
}
