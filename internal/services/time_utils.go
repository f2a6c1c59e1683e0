package services

import (
	"time"

	"github.com/terraincognita07/ritmo/internal/models"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func WeekdayLabel(day time.Weekday) string {
	switch day {
	case time.Monday:
		return models.WeekdayMonday
	case time.Tuesday:
		return models.WeekdayTuesday
	case time.Wednesday:
		return models.WeekdayWednesday
	case time.Thursday:
		return models.WeekdayThursday
	case time.Friday:
		return models.WeekdayFriday
	case time.Saturday:
		return models.WeekdaySaturday
	default:
		return models.WeekdaySunday
	}
}

// HabitDueAt reports whether a habit's reminder should fire at the given
// instant: the weekday is one of its recurrence days and the local clock
// matches its reminder time to the minute. Habits without a reminder time
// never fire.
func HabitDueAt(habit models.Habit, now time.Time) bool {
	reminder, err := ParseReminderTime(habit.ReminderTime)
	if err != nil || !reminder.Valid {
		return false
	}
	if now.Hour() != reminder.Hour || now.Minute() != reminder.Minute {
		return false
	}

	today := WeekdayLabel(now.Weekday())
	for _, day := range habit.RecurrenceDays {
		if day == today {
			return true
		}
	}
	return false
}
