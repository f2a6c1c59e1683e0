package services

import "github.com/terraincognita07/ritmo/internal/models"

// RecentCompletionLimit bounds how many events feed one progress chart, the
// same window the original client fetched with a descending recent-N query.
const RecentCompletionLimit = 30

type ProgressEventReader interface {
	ListRecentByHabit(habitID uint, limit int) ([]models.CompletionEvent, error)
}

type ProgressService struct {
	events ProgressEventReader
}

// HabitProgress carries both chart series plus the explicit no-data marker
// the client renders as a placeholder instead of an empty chart.
type HabitProgress struct {
	Daily   ProgressSeries `json:"daily"`
	Weekly  ProgressSeries `json:"weekly"`
	HasData bool           `json:"has_data"`
}

func NewProgressService(events ProgressEventReader) *ProgressService {
	return &ProgressService{events: events}
}

func (service *ProgressService) BuildHabitProgress(habitID uint) (HabitProgress, error) {
	events, err := service.events.ListRecentByHabit(habitID, RecentCompletionLimit)
	if err != nil {
		return HabitProgress{}, err
	}

	daily, err := AggregateDaily(events)
	if err != nil {
		return HabitProgress{}, err
	}
	weekly, err := AggregateWeekly(events)
	if err != nil {
		return HabitProgress{}, err
	}

	return HabitProgress{
		Daily:   daily,
		Weekly:  weekly,
		HasData: len(events) > 0,
	}, nil
}
