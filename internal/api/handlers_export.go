package api

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ritmo/internal/models"
)

type exportedHabit struct {
	models.Habit
	Completions []models.CompletionEvent `json:"completions"`
}

func (handler *Handler) buildExport(userID uint) ([]exportedHabit, error) {
	handler.ensureDependencies()
	habits, err := handler.repositories.Habits.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	exported := make([]exportedHabit, 0, len(habits))
	for _, habit := range habits {
		completions, err := handler.repositories.Completions.ListByHabit(habit.ID)
		if err != nil {
			return nil, err
		}
		exported = append(exported, exportedHabit{Habit: habit, Completions: completions})
	}
	return exported, nil
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	exported, err := handler.buildExport(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ritmo-export.json"`)
	return c.JSON(fiber.Map{
		"exported_at": time.Now().In(handler.location),
		"habits":      exported,
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	exported, err := handler.buildExport(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	header := []string{"habit_id", "habit_name", "recurrence_days", "reminder_time", "completed_at", "completed"}
	if err := writer.Write(header); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	for _, habit := range exported {
		if len(habit.Completions) == 0 {
			row := []string{
				strconv.FormatUint(uint64(habit.ID), 10),
				habit.Name,
				strings.Join(habit.RecurrenceDays, "|"),
				habit.ReminderTime,
				"",
				"",
			}
			if err := writer.Write(row); err != nil {
				return apiError(c, fiber.StatusInternalServerError, "failed to build export")
			}
			continue
		}

		for _, event := range habit.Completions {
			row := []string{
				strconv.FormatUint(uint64(habit.ID), 10),
				habit.Name,
				strings.Join(habit.RecurrenceDays, "|"),
				habit.ReminderTime,
				event.CompletedAt.Format(time.RFC3339),
				strconv.FormatBool(event.Completed),
			}
			if err := writer.Write(row); err != nil {
				return apiError(c, fiber.StatusInternalServerError, "failed to build export")
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ritmo-export.csv"`)
	return c.Send(buffer.Bytes())
}
