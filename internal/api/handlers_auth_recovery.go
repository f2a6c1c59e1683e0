package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ritmo/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const (
	recoveryAttemptsLimit  = 8
	recoveryAttemptsWindow = 15 * time.Minute
)

func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	limiterKey := requestLimiterKey(c)
	if handler.recoveryLimiter.tooManyRecent(limiterKey, now, recoveryAttemptsLimit, recoveryAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many recovery attempts")
	}

	var input forgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		handler.recoveryLimiter.addFailure(limiterKey, now, recoveryAttemptsWindow)
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	code := normalizeRecoveryCode(input.RecoveryCode)
	if err := services.ValidateRecoveryCodeFormat(code); err != nil {
		handler.recoveryLimiter.addFailure(limiterKey, now, recoveryAttemptsWindow)
		return apiError(c, fiber.StatusBadRequest, "invalid recovery code")
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindUserByRecoveryCode(code)
	if err != nil {
		handler.recoveryLimiter.addFailure(limiterKey, now, recoveryAttemptsWindow)
		return apiError(c, fiber.StatusBadRequest, "invalid recovery code")
	}

	token, err := handler.buildPasswordResetToken(user.ID, user.PasswordHash, passwordResetTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create reset token")
	}
	handler.recoveryLimiter.reset(limiterKey)

	return c.JSON(fiber.Map{
		"ok":          true,
		"reset_token": token,
	})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	var input resetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input.Password = strings.TrimSpace(input.Password)
	input.ConfirmPassword = strings.TrimSpace(input.ConfirmPassword)
	if err := services.ValidatePasswordStrength(input.Password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}
	if input.Password != input.ConfirmPassword {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}

	claims, err := handler.parsePasswordResetToken(input.Token)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reset token")
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reset token")
	}

	// The fingerprint check makes the token single-use: the first successful
	// reset changes the password hash the token was minted against.
	if services.PasswordStateFingerprint(user.PasswordHash) != claims.PasswordState {
		return apiError(c, fiber.StatusBadRequest, "invalid reset token")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}
	recoveryCode, recoveryHash, err := generateRecoveryCodeHash()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}

	user.PasswordHash = string(passwordHash)
	user.RecoveryCodeHash = recoveryHash
	user.MustChangePassword = false
	if err := handler.authService.SaveUser(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	token, err := handler.setAuthCookie(c, &user, true)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"token":         token,
		"recovery_code": recoveryCode,
		"user":          user,
	})
}
