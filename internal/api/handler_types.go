package api

import (
	"time"

	"github.com/terraincognita07/ritmo/internal/db"
	"github.com/terraincognita07/ritmo/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db              *gorm.DB
	secretKey       []byte
	location        *time.Location
	cookieSecure    bool
	recoveryLimiter *attemptLimiter

	repositories    *db.Repositories
	authService     *services.AuthService
	habitService    *services.HabitService
	progressService *services.ProgressService
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
	passwordResetTTL     = 30 * time.Minute
)

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type habitPayload struct {
	Name           string   `json:"name" form:"name"`
	Description    string   `json:"description" form:"description"`
	RecurrenceDays []string `json:"recurrence_days" form:"recurrence_days"`
	ReminderTime   string   `json:"reminder_time" form:"reminder_time"`
}

type forgotPasswordInput struct {
	RecoveryCode string `json:"recovery_code" form:"recovery_code"`
}

type resetPasswordInput struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type profileInput struct {
	DisplayName string `json:"display_name" form:"display_name"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}
