package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ritmo/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) MarkCompletion(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	// Timestamp is server-assigned; the client never supplies one.
	handler.ensureDependencies()
	event, err := handler.habitService.RecordCompletion(habitID, user.ID, time.Now().In(handler.location))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to record completion")
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) ListCompletions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	limit := services.RecentCompletionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	handler.ensureDependencies()
	events, err := handler.habitService.ListRecentCompletions(habitID, user.ID, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch completions")
	}
	return c.JSON(events)
}

func (handler *Handler) GetHabitProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	handler.ensureDependencies()
	if _, err := handler.habitService.FindForUser(habitID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch habit")
	}

	progress, err := handler.progressService.BuildHabitProgress(habitID)
	if err != nil {
		if errors.Is(err, services.ErrMalformedEvent) {
			return apiError(c, fiber.StatusUnprocessableEntity, "malformed completion event")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to build progress")
	}
	return c.JSON(progress)
}
