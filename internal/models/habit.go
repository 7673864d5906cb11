package models

import "time"

// Habit is a tracked daily habit. DisplayOrder is a dense 0..n-1 ranking
// over non-archived habits; archived habits keep their last order value
// but are ignored by ranking-aware reads.
type Habit struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Archived     bool   `gorm:"not null;default:false" json:"archived"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`

	// Relationships
	Logs []HabitLog `gorm:"foreignKey:HabitID" json:"logs,omitempty"`
}

// HabitLog records whether a habit was completed on a calendar day.
// The (habit_id, date) unique index makes logging idempotent: re-logging
// the same day updates the row instead of duplicating it.
type HabitLog struct {
	Base
	HabitID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_habit_logs_habit_date" json:"habit_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_habit_logs_habit_date" json:"date"`
	Completed bool      `gorm:"not null;default:true" json:"completed"`
	LoggedAt  time.Time `gorm:"not null" json:"logged_at"`

	// Relationships
	Habit Habit `gorm:"foreignKey:HabitID" json:"habit"`
}
