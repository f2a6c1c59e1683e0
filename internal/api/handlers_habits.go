package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ritmo/internal/services"
	"gorm.io/gorm"
)

func parseHabitID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("invalid habit id")
	}
	return uint(value), nil
}

func parseHabitPayload(c *fiber.Ctx) (services.HabitDraft, error) {
	var payload habitPayload
	if err := c.BodyParser(&payload); err != nil {
		return services.HabitDraft{}, err
	}
	return services.HabitDraft{
		Name:           payload.Name,
		Description:    payload.Description,
		RecurrenceDays: payload.RecurrenceDays,
		ReminderTime:   payload.ReminderTime,
	}, nil
}

func habitValidationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyHabitName):
		return "habit name is required"
	case errors.Is(err, services.ErrEmptyRecurrence):
		return "at least one recurrence day is required"
	case errors.Is(err, services.ErrInvalidRecurrenceDay):
		return "invalid recurrence day"
	case errors.Is(err, services.ErrInvalidReminderTime):
		return "invalid reminder time"
	default:
		return ""
	}
}

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	habits, err := handler.habitService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch habits")
	}
	return c.JSON(habits)
}

func (handler *Handler) GetHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	handler.ensureDependencies()
	habit, err := handler.habitService.FindForUser(habitID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	draft, err := parseHabitPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	handler.ensureDependencies()
	habit, err := handler.habitService.CreateForUser(user.ID, draft)
	if err != nil {
		if message := habitValidationMessage(err); message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create habit")
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	draft, err := parseHabitPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	handler.ensureDependencies()
	habit, err := handler.habitService.UpdateForUser(habitID, user.ID, draft)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		if message := habitValidationMessage(err); message != "" {
			return apiError(c, fiber.StatusBadRequest, message)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	handler.ensureDependencies()
	if err := handler.habitService.DeleteForUser(habitID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete habit")
	}
	return c.JSON(fiber.Map{"ok": true})
}
