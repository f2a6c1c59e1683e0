package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/ritmo/internal/models"
	"gorm.io/gorm"
)

// ReminderService watches the clock and pings the configured Telegram chat
// when a habit's reminder time comes up on one of its recurrence days.
// Delivery is optional: without bot credentials the service stays dormant.
type ReminderService struct {
	db            *gorm.DB
	botToken      string
	chatID        string
	enabled       bool
	location      *time.Location
	client        *http.Client
	mu            sync.Mutex
	sentReminders map[string]time.Time
}

func NewReminderService(db *gorm.DB, location *time.Location) *ReminderService {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	enabled := botToken != "" && chatID != ""

	if location == nil {
		location = time.Local
	}

	return &ReminderService{
		db:       db,
		botToken: botToken,
		chatID:   chatID,
		enabled:  enabled,
		location: location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentReminders: make(map[string]time.Time),
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	if !service.enabled {
		return
	}

	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run(ctx, time.Now().In(service.location))
			}
		}
	}()
}

func (service *ReminderService) run(ctx context.Context, now time.Time) {
	habits := make([]models.Habit, 0)
	if err := service.db.WithContext(ctx).Find(&habits).Error; err != nil {
		log.Printf("reminders: fetch habits failed: %v", err)
		return
	}

	today := DateAtLocation(now, service.location)
	for _, habit := range habits {
		if !HabitDueAt(habit, now) {
			continue
		}

		key := fmt.Sprintf("habit:%d:%s", habit.ID, today.Format("2006-01-02"))
		if !service.shouldSend(key, today) {
			continue
		}

		message := fmt.Sprintf("Ritmo reminder: time for %q.", habit.Name)
		if strings.TrimSpace(habit.Description) != "" {
			message = fmt.Sprintf("Ritmo reminder: time for %q. %s", habit.Name, strings.TrimSpace(habit.Description))
		}
		if err := service.sendTelegram(ctx, message); err != nil {
			log.Printf("reminders: send reminder for habit %d failed: %v", habit.ID, err)
		}
	}
}

func (service *ReminderService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentReminders[key]; ok && sentOn.Equal(today) {
		return false
	}

	service.sentReminders[key] = today
	if len(service.sentReminders) > 500 {
		service.sentReminders = make(map[string]time.Time)
	}
	return true
}

func (service *ReminderService) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", service.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", service.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
