package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/terraincognita07/ritmo/internal/models"
)

func TestMarkCompletionAssignsServerTimestamp(t *testing.T) {
	t.Parallel()

	app, database := newHabitTestApp(t)
	createHabitTestUser(t, database, "mark@example.com", "StrongPass1")
	authCookie := loginAndExtractAuthCookie(t, app, "mark@example.com", "StrongPass1")

	habit := createHabitViaAPI(t, app, authCookie, map[string]any{
		"name":            "Hydrate",
		"recurrence_days": []string{"monday"},
	})
	habitID := uint(habit["id"].(float64))

	before := time.Now().UTC().Add(-time.Minute)
	request := jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/habits/%d/completions", habitID), nil)
	request.Header.Set("Cookie", authCookie)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("mark completion failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}

	var event models.CompletionEvent
	decodeJSONBody(t, response, &event)
	if event.HabitID != habitID {
		t.Fatalf("event habit id = %d, want %d", event.HabitID, habitID)
	}
	if !event.Completed {
		t.Fatal("expected event marked completed")
	}
	after := time.Now().UTC().Add(time.Minute)
	if event.CompletedAt.Before(before) || event.CompletedAt.After(after) {
		t.Fatalf("completed_at %v is outside the request window", event.CompletedAt)
	}
}

func TestListCompletionsReturnsNewestFirstAndCapsLimit(t *testing.T) {
	t.Parallel()

	app, database := newHabitTestApp(t)
	createHabitTestUser(t, database, "list@example.com", "StrongPass1")
	authCookie := loginAndExtractAuthCookie(t, app, "list@example.com", "StrongPass1")

	habit := createHabitViaAPI(t, app, authCookie, map[string]any{
		"name":            "Journal",
		"recurrence_days": []string{"monday"},
	})
	habitID := uint(habit["id"].(float64))

	base := time.Date(2025, time.June, 1, 21, 0, 0, 0, time.UTC)
	for day := 0; day < 40; day++ {
		event := models.CompletionEvent{HabitID: habitID, CompletedAt: base.AddDate(0, 0, day), Completed: true}
		if err := database.Create(&event).Error; err != nil {
			t.Fatalf("seed completion event: %v", err)
		}
	}

	request := jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/habits/%d/completions?limit=100", habitID), nil)
	request.Header.Set("Cookie", authCookie)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("list completions failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	var events []models.CompletionEvent
	decodeJSONBody(t, response, &events)
	if len(events) != 30 {
		t.Fatalf("events len = %d, want limit capped at 30", len(events))
	}
	for index := 1; index < len(events); index++ {
		if events[index].CompletedAt.After(events[index-1].CompletedAt) {
			t.Fatalf("events not newest-first at index %d", index)
		}
	}
}

func TestGetHabitProgressBuildsDailyAndWeeklySeries(t *testing.T) {
	t.Parallel()

	app, database := newHabitTestApp(t)
	createHabitTestUser(t, database, "progress@example.com", "StrongPass1")
	authCookie := loginAndExtractAuthCookie(t, app, "progress@example.com", "StrongPass1")

	habit := createHabitViaAPI(t, app, authCookie, map[string]any{
		"name":            "Meditate",
		"recurrence_days": []string{"monday", "thursday"},
	})
	habitID := uint(habit["id"].(float64))

	// Two events in ISO week 10 of 2024 and one in week 11.
	for _, day := range []time.Time{
		time.Date(2024, time.March, 4, 7, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 7, 7, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 11, 7, 0, 0, 0, time.UTC),
	} {
		event := models.CompletionEvent{HabitID: habitID, CompletedAt: day, Completed: true}
		if err := database.Create(&event).Error; err != nil {
			t.Fatalf("seed completion event: %v", err)
		}
	}

	request := jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/habits/%d/progress", habitID), nil)
	request.Header.Set("Cookie", authCookie)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("progress request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	var progress struct {
		Daily struct {
			Labels []string `json:"labels"`
			Values []int    `json:"values"`
		} `json:"daily"`
		Weekly struct {
			Labels []string `json:"labels"`
			Values []int    `json:"values"`
		} `json:"weekly"`
		HasData bool `json:"has_data"`
	}
	decodeJSONBody(t, response, &progress)

	if !progress.HasData {
		t.Fatal("expected has_data true")
	}
	if len(progress.Daily.Labels) != 3 {
		t.Fatalf("daily labels len = %d, want 3", len(progress.Daily.Labels))
	}
	if progress.Daily.Labels[0] != "Monday 04/03/2024" {
		t.Fatalf("first daily label = %q, want Monday 04/03/2024", progress.Daily.Labels[0])
	}
	if len(progress.Weekly.Labels) != 2 {
		t.Fatalf("weekly labels = %v, want two week buckets", progress.Weekly.Labels)
	}
	if progress.Weekly.Labels[0] != "Week 10" || progress.Weekly.Values[0] != 2 {
		t.Fatalf("first weekly bucket = %q/%d, want Week 10 with 2", progress.Weekly.Labels[0], progress.Weekly.Values[0])
	}
	if progress.Weekly.Labels[1] != "Week 11" || progress.Weekly.Values[1] != 1 {
		t.Fatalf("second weekly bucket = %q/%d, want Week 11 with 1", progress.Weekly.Labels[1], progress.Weekly.Values[1])
	}
}

func TestGetHabitProgressWithoutEvents(t *testing.T) {
	t.Parallel()

	app, database := newHabitTestApp(t)
	createHabitTestUser(t, database, "empty@example.com", "StrongPass1")
	authCookie := loginAndExtractAuthCookie(t, app, "empty@example.com", "StrongPass1")

	habit := createHabitViaAPI(t, app, authCookie, map[string]any{
		"name":            "Fresh",
		"recurrence_days": []string{"friday"},
	})
	habitID := uint(habit["id"].(float64))

	request := jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/habits/%d/progress", habitID), nil)
	request.Header.Set("Cookie", authCookie)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("progress request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	var progress struct {
		HasData bool `json:"has_data"`
	}
	decodeJSONBody(t, response, &progress)
	if progress.HasData {
		t.Fatal("expected has_data false for a habit without completions")
	}
}
