package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/ritmo/internal/models"
)

func testHabitWithEvent(t *testing.T, habits *HabitRepository, completions *CompletionRepository, userID uint, name string) uint {
	t.Helper()

	habit := models.Habit{UserID: userID, Name: name, RecurrenceDays: []string{models.WeekdayMonday}}
	if err := habits.Create(&habit); err != nil {
		t.Fatalf("create habit: %v", err)
	}
	event := models.CompletionEvent{HabitID: habit.ID, CompletedAt: time.Now().UTC(), Completed: true}
	if err := completions.Create(&event); err != nil {
		t.Fatalf("create completion event: %v", err)
	}
	return habit.ID
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ritmo.db")

	first, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("first OpenSQLite returned error: %v", err)
	}

	var applied int64
	if err := first.Table("schema_migrations").Count(&applied).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("expected at least one applied migration")
	}

	second, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("second OpenSQLite returned error: %v", err)
	}

	var appliedAgain int64
	if err := second.Table("schema_migrations").Count(&appliedAgain).Error; err != nil {
		t.Fatalf("count schema_migrations after reopen: %v", err)
	}
	if appliedAgain != applied {
		t.Fatalf("migration count changed on reopen: %d -> %d", applied, appliedAgain)
	}
}

func TestUserRepositoryNormalizedEmailLookup(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "Case@Example.com")

	users := NewUserRepository(database)

	found, err := users.FindByNormalizedEmail("case@example.com")
	if err != nil {
		t.Fatalf("FindByNormalizedEmail returned error: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("FindByNormalizedEmail ID = %d, want %d", found.ID, user.ID)
	}

	exists, err := users.ExistsByNormalizedEmail("case@example.com")
	if err != nil {
		t.Fatalf("ExistsByNormalizedEmail returned error: %v", err)
	}
	if !exists {
		t.Fatal("ExistsByNormalizedEmail = false, want true")
	}

	exists, err = users.ExistsByNormalizedEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("ExistsByNormalizedEmail(missing) returned error: %v", err)
	}
	if exists {
		t.Fatal("ExistsByNormalizedEmail(missing) = true, want false")
	}
}

func TestUserRepositoryDeleteAccountAndRelatedData(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "leaving@example.com")
	survivor := createTestUser(t, database, "staying@example.com")

	users := NewUserRepository(database)
	habits := NewHabitRepository(database)
	completions := NewCompletionRepository(database)

	doomedHabit := testHabitWithEvent(t, habits, completions, user.ID, "Doomed")
	survivorHabit := testHabitWithEvent(t, habits, completions, survivor.ID, "Safe")

	if err := users.DeleteAccountAndRelatedData(user.ID); err != nil {
		t.Fatalf("DeleteAccountAndRelatedData returned error: %v", err)
	}

	if _, err := users.FindByID(user.ID); err == nil {
		t.Fatal("deleted user still found")
	}
	if count, _ := completions.CountByHabit(doomedHabit); count != 0 {
		t.Fatalf("deleted user's habit still has %d events", count)
	}
	remaining, err := habits.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser(deleted) returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("deleted user still owns %d habits", len(remaining))
	}

	if _, err := users.FindByID(survivor.ID); err != nil {
		t.Fatalf("unrelated user was removed: %v", err)
	}
	if count, _ := completions.CountByHabit(survivorHabit); count != 1 {
		t.Fatalf("unrelated habit completion count = %d, want 1", count)
	}
}
