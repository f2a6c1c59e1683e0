package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/terraincognita07/ritmo/internal/models"
)

var ErrMalformedEvent = errors.New("malformed completion event")

// ProgressSeries is a chart-ready pair of index-aligned label and value
// sequences.
type ProgressSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// AggregateDaily turns completion events into one chart point per event,
// ordered chronologically regardless of the order the store returned them in.
// Same-day events stay separate points. An empty input yields an empty series.
func AggregateDaily(events []models.CompletionEvent) (ProgressSeries, error) {
	ordered, err := sortEventsChronologically(events)
	if err != nil {
		return ProgressSeries{}, err
	}

	series := ProgressSeries{
		Labels: make([]string, 0, len(ordered)),
		Values: make([]int, 0, len(ordered)),
	}
	for _, event := range ordered {
		series.Labels = append(series.Labels, dailyLabel(event))
		series.Values = append(series.Values, completedValue(event))
	}
	return series, nil
}

// AggregateWeekly sums completed flags per ISO 8601 week. Buckets are keyed by
// (ISO week-year, week) so week 1 of consecutive years never collapses into
// one bar; labels keep the first-encounter order of the chronological scan.
func AggregateWeekly(events []models.CompletionEvent) (ProgressSeries, error) {
	ordered, err := sortEventsChronologically(events)
	if err != nil {
		return ProgressSeries{}, err
	}

	type weekKey struct {
		year int
		week int
	}

	sums := make(map[weekKey]int, len(ordered))
	order := make([]weekKey, 0, len(ordered))
	for _, event := range ordered {
		year, week := event.CompletedAt.ISOWeek()
		key := weekKey{year: year, week: week}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += completedValue(event)
	}

	series := ProgressSeries{
		Labels: make([]string, 0, len(order)),
		Values: make([]int, 0, len(order)),
	}
	for _, key := range order {
		series.Labels = append(series.Labels, fmt.Sprintf("Week %d", key.week))
		series.Values = append(series.Values, sums[key])
	}
	return series, nil
}

func sortEventsChronologically(events []models.CompletionEvent) ([]models.CompletionEvent, error) {
	ordered := make([]models.CompletionEvent, len(events))
	copy(ordered, events)
	for _, event := range ordered {
		if event.CompletedAt.IsZero() {
			return nil, fmt.Errorf("%w: event %d has no timestamp", ErrMalformedEvent, event.ID)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CompletedAt.Equal(ordered[j].CompletedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CompletedAt.Before(ordered[j].CompletedAt)
	})
	return ordered, nil
}

func dailyLabel(event models.CompletionEvent) string {
	return event.CompletedAt.Format("Monday 02/01/2006")
}

func completedValue(event models.CompletionEvent) int {
	if event.Completed {
		return 1
	}
	return 0
}
