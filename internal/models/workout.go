package models

import "time"

// WorkoutPlan план тренировок, назначенный тренером ученику.
type WorkoutPlan struct {
	ID          int       `json:"id"`
	StudentUID  string    `json:"student_uid"`
	TrainerUID  string    `json:"trainer_uid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkoutDay день плана тренировок. Всегда ссылается на родительский план.
type WorkoutDay struct {
	ID         int    `json:"id"`
	PlanID     int    `json:"plan_id"`
	DayName    string `json:"day_name"`
	Focus      string `json:"focus"`
	OrderIndex int    `json:"order_index"`
	IsRestDay  bool   `json:"is_rest_day"`
}

// WorkoutExercise упражнение дня тренировок.
type WorkoutExercise struct {
	ID          int    `json:"id"`
	DayID       int    `json:"day_id"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
	OrderIndex  int    `json:"order_index"`
}

// WorkoutSession тренировка, выполненная учеником по дню плана.
// Сессия стартует открытой и закрывается отдельным действием.
type WorkoutSession struct {
	ID              int        `json:"id"`
	StudentUID      string     `json:"student_uid"`
	PlanID          int        `json:"plan_id"`
	DayID           int        `json:"day_id"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           string     `json:"notes"`
	Mood            string     `json:"mood"`
}

// ExerciseLog записанный подход упражнения в рамках сессии.
type ExerciseLog struct {
	ID          int       `json:"id"`
	SessionID   int       `json:"session_id"`
	ExerciseID  int       `json:"exercise_id"`
	SetNumber   int       `json:"set_number"`
	WeightKg    float64   `json:"weight_kg"`
	Reps        int       `json:"reps"`
	IsCompleted bool      `json:"is_completed"`
	RPE         int       `json:"rpe"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyWorkoutPlan используется для приёма нового плана тренировок
// вместе с вложенными днями и упражнениями одним запросом.
type DummyWorkoutPlan struct {
	StudentUID  string            `json:"student_uid" validate:"required,uuid"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Schedule    []DummyWorkoutDay `json:"schedule" validate:"required,min=1,dive"`
}

// DummyWorkoutDay день в составе запроса на создание плана.
type DummyWorkoutDay struct {
	DayName   string                 `json:"day_name" validate:"required"`
	Focus     string                 `json:"focus"`
	IsRestDay bool                   `json:"is_rest_day"`
	Exercises []DummyWorkoutExercise `json:"exercises" validate:"dive"`
}

// DummyWorkoutExercise упражнение в составе запроса на создание плана.
type DummyWorkoutExercise struct {
	Name        string `json:"name" validate:"required"`
	Sets        int    `json:"sets" validate:"required,gt=0"`
	Reps        string `json:"reps" validate:"required"`
	RestSeconds int    `json:"rest_seconds" validate:"gte=0"`
}

// DummyWorkoutSession используется для старта сессии тренировки.
type DummyWorkoutSession struct {
	PlanID int `json:"plan_id" validate:"required,gt=0"`
	DayID  int `json:"day_id" validate:"required,gt=0"`
}

// DummyCompleteSession используется для завершения сессии тренировки.
type DummyCompleteSession struct {
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	Notes           string `json:"notes"`
	Mood            string `json:"mood" validate:"omitempty,oneof=great good normal tired awful"`
}

// DummyExerciseLog используется для записи подхода упражнения.
type DummyExerciseLog struct {
	SessionID  int     `json:"session_id" validate:"required,gt=0"`
	ExerciseID int     `json:"exercise_id" validate:"required,gt=0"`
	SetNumber  int     `json:"set_number" validate:"required,gt=0"`
	WeightKg   float64 `json:"weight_kg" validate:"gte=0"`
	Reps       int     `json:"reps" validate:"gte=0"`
	RPE        int     `json:"rpe" validate:"gte=0,lte=10"`
	Notes      string  `json:"notes"`
}
