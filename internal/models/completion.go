package models

import "time"

// CompletionEvent records that a habit was completed on one occasion.
// Events are append-only: the application never updates or deletes them
// individually (they only go away when the owning habit is deleted).
// Completed is carried for partial/negative states even though the API
// currently only ever writes true; "not completed" is the absence of a row.
type CompletionEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HabitID     uint      `gorm:"not null;index" json:"habit_id"`
	CompletedAt time.Time `gorm:"not null;index" json:"completed_at"`
	Completed   bool      `gorm:"not null;default:true" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
