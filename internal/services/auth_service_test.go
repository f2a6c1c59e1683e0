package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/ritmo/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAuthUserRepository struct {
	users []models.User
	err   error
}

func (stub *stubAuthUserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubAuthUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubAuthUserRepository) FindByID(userID uint) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubAuthUserRepository) Create(user *models.User) error { return nil }
func (stub *stubAuthUserRepository) Save(user *models.User) error   { return nil }

func (stub *stubAuthUserRepository) ListWithRecoveryCodeHash() ([]models.User, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	withHash := make([]models.User, 0)
	for _, user := range stub.users {
		if user.RecoveryCodeHash != "" {
			withHash = append(withHash, user)
		}
	}
	return withHash, nil
}

func TestFindUserByRecoveryCode(t *testing.T) {
	const code = "RITMO-ABCD-EFGH-2345"
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash recovery code: %v", err)
	}

	service := NewAuthService(&stubAuthUserRepository{users: []models.User{
		{ID: 1, Email: "other@example.com"},
		{ID: 2, Email: "owner@example.com", RecoveryCodeHash: string(hash)},
	}})

	user, err := service.FindUserByRecoveryCode(code)
	if err != nil {
		t.Fatalf("FindUserByRecoveryCode returned error: %v", err)
	}
	if user.ID != 2 {
		t.Fatalf("expected user 2, got %d", user.ID)
	}

	if _, err := service.FindUserByRecoveryCode("RITMO-XXXX-XXXX-XXXX"); !errors.Is(err, ErrRecoveryCodeNotFound) {
		t.Fatalf("expected ErrRecoveryCodeNotFound, got %v", err)
	}
}

func TestFindUserByRecoveryCodePropagatesRepoError(t *testing.T) {
	repoErr := errors.New("store unavailable")
	service := NewAuthService(&stubAuthUserRepository{err: repoErr})

	if _, err := service.FindUserByRecoveryCode("RITMO-ABCD-EFGH-2345"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error passthrough, got %v", err)
	}
}
