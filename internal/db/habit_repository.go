package db

import (
	"github.com/terraincognita07/ritmo/internal/models"
	"gorm.io/gorm"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) ListByUser(userID uint) ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (repo *HabitRepository) ListAll() ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	if err := repo.database.Order("id ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// FindByIDForUser scopes the lookup by owner so one user can never address
// another user's habit, regardless of how the id was obtained.
func (repo *HabitRepository) FindByIDForUser(habitID uint, userID uint) (models.Habit, error) {
	var habit models.Habit
	if err := repo.database.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (repo *HabitRepository) Create(habit *models.Habit) error {
	return repo.database.Create(habit).Error
}

func (repo *HabitRepository) Save(habit *models.Habit) error {
	return repo.database.Save(habit).Error
}

// DeleteWithCompletions removes the habit and its completion log in one
// transaction, so no orphaned events survive the habit.
func (repo *HabitRepository) DeleteWithCompletions(habitID uint, userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", habitID, userID).Delete(&models.Habit{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("habit_id = ?", habitID).Delete(&models.CompletionEvent{}).Error
	})
}
