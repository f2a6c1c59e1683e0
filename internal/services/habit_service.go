package services

import (
	"time"

	"github.com/terraincognita07/ritmo/internal/models"
)

type HabitRepository interface {
	ListByUser(userID uint) ([]models.Habit, error)
	FindByIDForUser(habitID uint, userID uint) (models.Habit, error)
	Create(habit *models.Habit) error
	Save(habit *models.Habit) error
	DeleteWithCompletions(habitID uint, userID uint) error
}

type CompletionRepository interface {
	Create(event *models.CompletionEvent) error
	ListRecentByHabit(habitID uint, limit int) ([]models.CompletionEvent, error)
}

type HabitService struct {
	habits      HabitRepository
	completions CompletionRepository
}

func NewHabitService(habits HabitRepository, completions CompletionRepository) *HabitService {
	return &HabitService{habits: habits, completions: completions}
}

func (service *HabitService) ListForUser(userID uint) ([]models.Habit, error) {
	return service.habits.ListByUser(userID)
}

func (service *HabitService) FindForUser(habitID uint, userID uint) (models.Habit, error) {
	return service.habits.FindByIDForUser(habitID, userID)
}

func (service *HabitService) CreateForUser(userID uint, draft HabitDraft) (models.Habit, error) {
	validated, err := ValidateHabitDraft(draft)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		UserID:         userID,
		Name:           validated.Name,
		Description:    validated.Description,
		RecurrenceDays: validated.RecurrenceDays,
		ReminderTime:   validated.ReminderTime,
	}
	if err := service.habits.Create(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (service *HabitService) UpdateForUser(habitID uint, userID uint, draft HabitDraft) (models.Habit, error) {
	habit, err := service.habits.FindByIDForUser(habitID, userID)
	if err != nil {
		return models.Habit{}, err
	}

	validated, err := ValidateHabitDraft(draft)
	if err != nil {
		return models.Habit{}, err
	}

	habit.Name = validated.Name
	habit.Description = validated.Description
	habit.RecurrenceDays = validated.RecurrenceDays
	habit.ReminderTime = validated.ReminderTime
	if err := service.habits.Save(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (service *HabitService) DeleteForUser(habitID uint, userID uint) error {
	return service.habits.DeleteWithCompletions(habitID, userID)
}

// RecordCompletion appends one event with a server-assigned timestamp. The
// ownership check runs first so a completion can never attach to a habit the
// caller does not own.
func (service *HabitService) RecordCompletion(habitID uint, userID uint, now time.Time) (models.CompletionEvent, error) {
	if _, err := service.habits.FindByIDForUser(habitID, userID); err != nil {
		return models.CompletionEvent{}, err
	}

	event := models.CompletionEvent{
		HabitID:     habitID,
		CompletedAt: now,
		Completed:   true,
	}
	if err := service.completions.Create(&event); err != nil {
		return models.CompletionEvent{}, err
	}
	return event, nil
}

func (service *HabitService) ListRecentCompletions(habitID uint, userID uint, limit int) ([]models.CompletionEvent, error) {
	if _, err := service.habits.FindByIDForUser(habitID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > RecentCompletionLimit {
		limit = RecentCompletionLimit
	}
	return service.completions.ListRecentByHabit(habitID, limit)
}
