package models

import "time"

const (
	WeekdayMonday    = "monday"
	WeekdayTuesday   = "tuesday"
	WeekdayWednesday = "wednesday"
	WeekdayThursday  = "thursday"
	WeekdayFriday    = "friday"
	WeekdaySaturday  = "saturday"
	WeekdaySunday    = "sunday"
)

// WeekdayOrder is the canonical persistence and display order for
// recurrence days, independent of the order the client selected them in.
func WeekdayOrder() []string {
	return []string{
		WeekdayMonday,
		WeekdayTuesday,
		WeekdayWednesday,
		WeekdayThursday,
		WeekdayFriday,
		WeekdaySaturday,
		WeekdaySunday,
	}
}

type Habit struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`
	RecurrenceDays []string  `gorm:"serializer:json" json:"recurrence_days"`
	ReminderTime   string    `json:"reminder_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
