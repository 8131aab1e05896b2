// Package identity разрешает сессию в пользователя и его роль.
// Тонкая обертка над внешним провайдером сессий: здесь им выступает
// подписанный JWT. Разрешение выполняется один раз на запрос в middleware,
// результат кладется в контекст и переиспользуется всеми проверками,
// чтобы роль не читалась дважды с разным результатом.
package identity

import (
	"fmt"

	"github.com/eldarvlg/trainer-platform/internal/errs"
	"github.com/eldarvlg/trainer-platform/internal/lib/jwt"
	"github.com/eldarvlg/trainer-platform/internal/models"
)

// Resolver разрешает токен сессии в Identity.
type Resolver struct {
	maker jwt.Maker
}

// NewResolver создает новый Resolver поверх jwt.Maker.
func NewResolver(maker jwt.Maker) *Resolver {
	return &Resolver{maker: maker}
}

// Resolve парсит токен и возвращает пользователя с ролью.
// Любая проблема с токеном или ролью дает errs.ErrNotAuthenticated.
func (r *Resolver) Resolve(token string) (*models.Identity, error) {
	const op = "identity.Resolve"

	claims, err := r.maker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errs.ErrNotAuthenticated, err)
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errs.ErrNotAuthenticated, err)
	}
	if claims.UserUID == "" {
		return nil, fmt.Errorf("%s: %w: empty user uid", op, errs.ErrNotAuthenticated)
	}
	return &models.Identity{
		UserUID:  claims.UserUID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
