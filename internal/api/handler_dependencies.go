package api

import (
	"github.com/terraincognita07/ritmo/internal/db"
	"github.com/terraincognita07/ritmo/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.habitService = services.NewHabitService(handler.repositories.Habits, handler.repositories.Completions)
	handler.progressService = services.NewProgressService(handler.repositories.Completions)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.habitService == nil {
		handler.habitService = services.NewHabitService(handler.repositories.Habits, handler.repositories.Completions)
	}
	if handler.progressService == nil {
		handler.progressService = services.NewProgressService(handler.repositories.Completions)
	}
}
