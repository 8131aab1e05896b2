// Package authz собирает проверки доступа в одно решение разрешить/запретить.
//
// Порядок проверок фиксирован: роль, затем связка тренер-ученик, затем
// статус подписки. Каждая проверка обрывает цепочку, поэтому вызывающий
// не узнает о состоянии подписки ученика, с которым он даже не связан.
package authz

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

// RelationshipChecker проверка активной связки тренер-ученик.
type RelationshipChecker interface {
	IsActive(ctx context.Context, trainerUID, studentUID string) (bool, error)
}

// EntitlementSource источник производного статуса подписки ученика.
type EntitlementSource interface {
	ForStudent(ctx context.Context, studentUID string) (*models.Subscription, error)
}

// Params параметры одного решения о доступе.
type Params struct {
	// AllowedRoles допустимые роли. Пустой срез означает "любая
	// аутентифицированная роль".
	AllowedRoles []models.Role
	// TargetStudentUID ученик, данных которого касается действие.
	// Пустая строка — действие не привязано к конкретному ученику.
	TargetStudentUID string
	// RequireEntitlement требовать активную подписку целевого ученика.
	RequireEntitlement bool
}

// Guard принимает решение о доступе для каждого запроса.
type Guard struct {
	rels         RelationshipChecker
	entitlements EntitlementSource
	log          *slog.Logger
}

// New создает новый Guard.
func New(rels RelationshipChecker, entitlements EntitlementSource, log *slog.Logger) *Guard {
	return &Guard{
		rels:         rels,
		entitlements: entitlements,
		log:          log,
	}
}

// Authorize возвращает nil, если действие разрешено, иначе терминальную
// ошибку из errs. Identity должен быть разрешен заранее (один раз на запрос).
func (g *Guard) Authorize(ctx context.Context, ident *models.Identity, p Params) error {
	const op = "authz.Authorize"

	if ident == nil {
		return fmt.Errorf("%s: %w", op, errs.ErrNotAuthenticated)
	}

	if len(p.AllowedRoles) > 0 && !slices.Contains(p.AllowedRoles, ident.Role) {
		return fmt.Errorf("%s: %w", op, errs.ErrRoleNotAllowed)
	}

	if p.TargetStudentUID != "" {
		switch ident.Role {
		case models.RoleTrainer:
			if ident.UserUID != p.TargetStudentUID {
				active, err := g.rels.IsActive(ctx, ident.UserUID, p.TargetStudentUID)
				if err != nil {
					return fmt.Errorf("%s: %w: %w", op, errs.ErrStoreFailure, err)
				}
				if !active {
					return fmt.Errorf("%s: %w", op, errs.ErrNotYourStudent)
				}
			}
		case models.RoleStudent:
			// Ученик видит только свои данные, независимо от набора ролей.
			if ident.UserUID != p.TargetStudentUID {
				return fmt.Errorf("%s: %w", op, errs.ErrRoleNotAllowed)
			}
		}
	}

	if p.RequireEntitlement {
		target := p.TargetStudentUID
		if target == "" {
			target = ident.UserUID
		}
		sub, err := g.entitlements.ForStudent(ctx, target)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", op, errs.ErrStoreFailure, err)
		}
		if sub.Status != models.SubscriptionActive {
			return fmt.Errorf("%s: %w", op, errs.ErrNotEntitled)
		}
	}

	return nil
}
