package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ritmo/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return apiError(c, fiber.StatusBadRequest, "display name is required")
	}

	handler.ensureDependencies()
	if err := handler.repositories.Users.UpdateDisplayName(user.ID, displayName); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	user.DisplayName = displayName
	return c.JSON(user)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	current := strings.TrimSpace(input.CurrentPassword)
	next := strings.TrimSpace(input.NewPassword)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid current password")
	}
	if next == current {
		return apiError(c, fiber.StatusBadRequest, "new password must differ")
	}
	if err := services.ValidatePasswordStrength(next); err != nil {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}
	if next != confirm {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	handler.ensureDependencies()
	if err := handler.repositories.Users.UpdatePassword(user.ID, string(passwordHash), false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to change password")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) RegenerateRecoveryCode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recoveryCode, recoveryHash, err := generateRecoveryCodeHash()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}

	handler.ensureDependencies()
	if err := handler.repositories.Users.UpdateRecoveryCodeHash(user.ID, recoveryHash); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to store recovery code")
	}

	return c.JSON(fiber.Map{"recovery_code": recoveryCode})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input deleteAccountInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(input.Password))) != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid password")
	}

	handler.ensureDependencies()
	if err := handler.repositories.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete account")
	}

	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
