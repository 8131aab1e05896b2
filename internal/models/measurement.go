package models

import "time"

// Measurement замер прогресса ученика.
type Measurement struct {
	ID         int       `json:"id"`
	StudentUID string    `json:"student_uid"`
	MeasuredOn time.Time `json:"measured_on"`
	WeightKg   float64   `json:"weight_kg"`
	BodyFatPct float64   `json:"body_fat_pct"`
	Notes      string    `json:"notes"`
}

// DummyMeasurement используется для приёма нового замера из JSON-запроса.
type DummyMeasurement struct {
	MeasuredOn string  `json:"measured_on" validate:"required"` // Формат 02-01-2006
	WeightKg   float64 `json:"weight_kg" validate:"required,gt=0"`
	BodyFatPct float64 `json:"body_fat_pct" validate:"gte=0,lte=100"`
	Notes      string  `json:"notes"`
}
