package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	habits := api.Group("/habits", handler.AuthRequired)
	habits.Get("", handler.ListHabits)
	habits.Post("", handler.CreateHabit)
	habits.Get("/:id", handler.GetHabit)
	habits.Put("/:id", handler.UpdateHabit)
	habits.Delete("/:id", handler.DeleteHabit)
	habits.Post("/:id/completions", handler.MarkCompletion)
	habits.Get("/:id/completions", handler.ListCompletions)
	habits.Get("/:id/progress", handler.GetHabitProgress)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("/profile", handler.GetProfile)
	settings.Post("/profile", handler.UpdateProfile)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Post("/regenerate-recovery-code", handler.RegenerateRecoveryCode)
	settings.Delete("/delete-account", handler.DeleteAccount)
}
