// Package models содержит доменные структуры платформы тренер-ученик:
// пользователей, связки тренер-ученик, журнал платежей, планы тренировок
// и замеры прогресса. Структуры используются в бизнес-логике и при работе
// с хранилищем.
package models

import (
	"fmt"
	"time"
)

// Role закрытый тип роли пользователя. Допустимы только две роли,
// поэтому проверки наборов ролей можно делать исчерпывающими.
type Role string

const (
	// RoleStudent роль ученика.
	RoleStudent Role = "student"
	// RoleTrainer роль тренера.
	RoleTrainer Role = "trainer"
)

// ParseRole преобразует строку в Role, отклоняя любые другие значения.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleTrainer:
		return RoleTrainer, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         Role      // Роль пользователя: student или trainer
	CreatedAt    time.Time // Дата регистрации
}

// Identity результат разрешения сессии: кто зовет и с какой ролью.
// Разрешается один раз на запрос и переиспользуется во всех проверках.
type Identity struct {
	UserUID  string
	Username string
	Role     Role
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=student trainer"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}

// DummyResetPassword используется для смены пароля аутентифицированным
// пользователем: старый пароль подтверждает владение аккаунтом.
type DummyResetPassword struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
