package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/ritmo/internal/models"
)

const MaxHabitDescriptionLength = 2000

var (
	ErrEmptyHabitName       = errors.New("empty habit name")
	ErrEmptyRecurrence      = errors.New("empty recurrence days")
	ErrInvalidRecurrenceDay = errors.New("invalid recurrence day")
	ErrInvalidReminderTime  = errors.New("invalid reminder time")
)

type HabitDraft struct {
	Name           string
	Description    string
	RecurrenceDays []string
	ReminderTime   string
}

// ValidateHabitDraft checks and normalizes a draft before it is allowed to
// reach the store. On success the returned draft has a trimmed name,
// recurrence days in canonical weekday order with duplicates collapsed, and
// the reminder time in canonical HH:MM form (or empty when unset).
func ValidateHabitDraft(draft HabitDraft) (HabitDraft, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return HabitDraft{}, ErrEmptyHabitName
	}

	days, err := normalizeRecurrenceDays(draft.RecurrenceDays)
	if err != nil {
		return HabitDraft{}, err
	}
	if len(days) == 0 {
		return HabitDraft{}, ErrEmptyRecurrence
	}
	draft.RecurrenceDays = SerializeFrequency(days)

	reminder, err := ParseReminderTime(draft.ReminderTime)
	if err != nil {
		return HabitDraft{}, err
	}
	draft.ReminderTime = reminder.String()

	if len(draft.Description) > MaxHabitDescriptionLength {
		draft.Description = draft.Description[:MaxHabitDescriptionLength]
	}

	return draft, nil
}

// SerializeFrequency orders a weekday set canonically (Monday through Sunday)
// so the persisted and displayed order never depends on selection order.
func SerializeFrequency(days []string) []string {
	selected := make(map[string]bool, len(days))
	for _, day := range days {
		selected[strings.ToLower(strings.TrimSpace(day))] = true
	}

	ordered := make([]string, 0, len(selected))
	for _, day := range models.WeekdayOrder() {
		if selected[day] {
			ordered = append(ordered, day)
		}
	}
	return ordered
}

// ParseFrequency reads a persisted weekday list back as a set: order carries
// no meaning, duplicates collapse, unknown values are dropped.
func ParseFrequency(raw []string) []string {
	return SerializeFrequency(raw)
}

func normalizeRecurrenceDays(days []string) ([]string, error) {
	known := make(map[string]bool, 7)
	for _, day := range models.WeekdayOrder() {
		known[day] = true
	}

	normalized := make([]string, 0, len(days))
	for _, day := range days {
		value := strings.ToLower(strings.TrimSpace(day))
		if value == "" {
			continue
		}
		if !known[value] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRecurrenceDay, day)
		}
		normalized = append(normalized, value)
	}
	return normalized, nil
}

// TimeOfDay is a date-independent reminder time. The zero value means unset.
type TimeOfDay struct {
	Hour   int
	Minute int
	Valid  bool
}

func (value TimeOfDay) String() string {
	if !value.Valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", value.Hour, value.Minute)
}

// ParseReminderTime extracts hour and minute from whatever the store (or a
// client) hands back: "HH:MM", "HH:MM:SS", or a full RFC 3339 timestamp whose
// date component is discarded. An absent value is not an error, it parses to
// the unset sentinel.
func ParseReminderTime(raw string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TimeOfDay{}, nil
	}

	for _, layout := range []string{"15:04", "15:04:05", time.RFC3339} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Valid: true}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidReminderTime, raw)
}
