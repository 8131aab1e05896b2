package models

import "time"

// Статусы связки тренер-ученик. Связка никогда не удаляется:
// при отчислении ученика статус переводится в ended.
const (
	RelationshipActive = "active"
	RelationshipEnded  = "ended"
)

// Relationship связка тренер-ученик, дающая тренеру право работать
// с данными конкретного ученика.
type Relationship struct {
	ID         int       // Идентификатор записи
	TrainerUID string    // UID тренера
	StudentUID string    // UID ученика
	Status     string    // active или ended
	StartedAt  time.Time // Дата создания связки
}

// StudentInfo элемент списка учеников тренера.
type StudentInfo struct {
	Relationship
	Username string // Имя ученика
	Email    string // Почта ученика
}

// DummyAddStudent используется для приёма запроса на добавление ученика.
type DummyAddStudent struct {
	StudentUID string `json:"student_uid" validate:"required,uuid"`
}
