// Package errs определяет терминальные ошибки движка авторизации.
// Обработчики на границе HTTP сопоставляют их со статусами ответа,
// чтобы клиент мог отличить "войдите заново" от "вам сюда нельзя".
package errs

import "errors"

var (
	// ErrNotAuthenticated сессия отсутствует или не разрешается в пользователя.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRoleNotAllowed роль вызывающего не входит в набор допустимых.
	ErrRoleNotAllowed = errors.New("role not allowed")

	// ErrNotYourStudent у тренера нет активной связки с целевым учеником.
	ErrNotYourStudent = errors.New("not your student")

	// ErrNotEntitled подписка целевого ученика не в статусе active.
	ErrNotEntitled = errors.New("subscription is not active")

	// ErrDuplicateRelationship активная связка для пары уже существует.
	ErrDuplicateRelationship = errors.New("active relationship already exists")

	// ErrTargetNotFound целевая запись не найдена.
	ErrTargetNotFound = errors.New("target not found")

	// ErrStoreFailure ошибка хранилища, не связанная с данными запроса.
	ErrStoreFailure = errors.New("store failure")
)

// IsForbidden сообщает, относится ли ошибка к семейству отказов в доступе
// для аутентифицированного пользователя (HTTP 403).
func IsForbidden(err error) bool {
	return errors.Is(err, ErrRoleNotAllowed) ||
		errors.Is(err, ErrNotYourStudent) ||
		errors.Is(err, ErrNotEntitled)
}
