package db

import (
	"github.com/terraincognita07/ritmo/internal/models"
	"gorm.io/gorm"
)

type CompletionRepository struct {
	database *gorm.DB
}

func NewCompletionRepository(database *gorm.DB) *CompletionRepository {
	return &CompletionRepository{database: database}
}

func (repo *CompletionRepository) Create(event *models.CompletionEvent) error {
	return repo.database.Create(event).Error
}

// ListRecentByHabit returns the newest events first, the same shape a
// "recent N" store query hands back. Callers that need chronological order
// sort for themselves.
func (repo *CompletionRepository) ListRecentByHabit(habitID uint, limit int) ([]models.CompletionEvent, error) {
	events := make([]models.CompletionEvent, 0)
	query := repo.database.Where("habit_id = ?", habitID).Order("completed_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *CompletionRepository) ListByHabit(habitID uint) ([]models.CompletionEvent, error) {
	events := make([]models.CompletionEvent, 0)
	if err := repo.database.Where("habit_id = ?", habitID).Order("completed_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *CompletionRepository) CountByHabit(habitID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CompletionEvent{}).Where("habit_id = ?", habitID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
