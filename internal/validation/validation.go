package validation

import (
	"fmt"
	"strings"
	"time"

	"wayfare/internal/constants"
	"wayfare/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingTitle       ConflictType = "missing_title"
	ConflictMissingDestination ConflictType = "missing_destination"
	ConflictMissingDates       ConflictType = "missing_dates"
	ConflictInvalidDateRange   ConflictType = "invalid_date_range"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidTime        ConflictType = "invalid_time"
)

// Conflict represents a detected problem in an itinerary
type Conflict struct {
	Type        ConflictType
	Description string
	Field       string
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// ForDraft checks the requirements for saving a draft: dates that are set
// must be well-formed and ordered, and schedule times must parse. Unset
// dates and destination are fine for a draft.
func ForDraft(state models.ItineraryState) Result {
	result := Result{Conflicts: []Conflict{}}
	checkDates(&result, state)
	checkItemTimes(&result, state)
	return result
}

// ForPublish checks the stricter publish requirements on top of the draft
// set: destination and both dates must be present.
func ForPublish(state models.ItineraryState) Result {
	result := ForDraft(state)

	if state.Destination == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingDestination,
			Description: "Publishing requires a destination",
			Field:       "destination",
		})
	}
	if state.StartDate == "" || state.EndDate == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingDates,
			Description: "Publishing requires both a start and an end date",
			Field:       "dates",
		})
	}
	if state.Title == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingTitle,
			Description: "Publishing requires a title",
			Field:       "title",
		})
	}
	return result
}

func checkDates(result *Result, state models.ItineraryState) {
	start, startOK := parseDate(result, "start date", state.StartDate)
	end, endOK := parseDate(result, "end date", state.EndDate)

	if startOK && endOK && state.StartDate != "" && state.EndDate != "" && end.Before(start) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateRange,
			Description: fmt.Sprintf("End date (%s) is before start date (%s)", state.EndDate, state.StartDate),
			Field:       "dates",
		})
	}
}

func parseDate(result *Result, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(constants.DateFormat, value)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDate,
			Description: fmt.Sprintf("Invalid %s: %s", field, value),
			Field:       field,
		})
		return time.Time{}, false
	}
	return t, true
}

func checkItemTimes(result *Result, state models.ItineraryState) {
	for _, day := range state.Days {
		for _, item := range day.Items {
			for _, t := range []string{item.StartTime, item.EndTime} {
				if t == "" {
					continue
				}
				if !isValidScheduleTime(t) {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictInvalidTime,
						Description: fmt.Sprintf("Day %d: item %q has invalid time %q", day.DayNumber, item.Name, t),
						Field:       "items",
					})
				}
			}
		}
	}
}

// isValidScheduleTime accepts a single HH:MM instant or an HH:MM-HH:MM
// range. Some catalog entries carry opening-hour ranges; the export path
// collapses those to the first component.
func isValidScheduleTime(value string) bool {
	parts := []string{value}
	if first, second, found := strings.Cut(value, "-"); found {
		parts = []string{first, second}
	}
	for _, part := range parts {
		if _, err := time.Parse(constants.TimeFormat, part); err != nil {
			return false
		}
	}
	return true
}
