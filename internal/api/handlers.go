package api

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, location *time.Location, cookieSecure bool) (*Handler, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		db:              database,
		secretKey:       []byte(secret),
		location:        location,
		cookieSecure:    cookieSecure,
		recoveryLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}
