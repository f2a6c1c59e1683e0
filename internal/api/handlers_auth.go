package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ritmo/internal/models"
	"github.com/terraincognita07/ritmo/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return credentialsInput{}, err
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return credentialsInput{}, err
	}
	input.Email = email
	input.Password = password
	return input, nil
}

func validateRegistrationCredentials(input credentialsInput) string {
	if err := services.ValidatePasswordStrength(input.Password); err != nil {
		return "weak password"
	}
	if input.Password != input.ConfirmPassword {
		return "password mismatch"
	}
	return ""
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if validationError := validateRegistrationCredentials(credentials); validationError != "" {
		return apiError(c, fiber.StatusBadRequest, validationError)
	}

	handler.ensureDependencies()
	exists, err := handler.authService.RegistrationEmailExists(credentials.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	recoveryCode, recoveryHash, err := generateRecoveryCodeHash()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}

	user := models.User{
		Email:            credentials.Email,
		PasswordHash:     string(passwordHash),
		RecoveryCodeHash: recoveryHash,
		CreatedAt:        time.Now().In(handler.location),
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	token, err := handler.setAuthCookie(c, &user, true)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":         token,
		"recovery_code": recoveryCode,
		"user":          user,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindByNormalizedEmail(credentials.Email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if user.MustChangePassword {
		resetToken, err := handler.buildPasswordResetToken(user.ID, user.PasswordHash, passwordResetTTL)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to create reset token")
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":       "password change required",
			"reset_token": resetToken,
		})
	}

	token, err := handler.setAuthCookie(c, &user, credentials.RememberMe)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
