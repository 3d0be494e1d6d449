package plan

import (
	"wayfare/internal/models"
)

// Reconcile recomputes the day list for a new date range while preserving
// item assignment by day number. Days beyond the new range are dropped along
// with their items; that trim is intentional and destructive. When either
// bound is absent every existing day is kept and relabeled with a
// placeholder, so clearing dates never loses items. An inverted range is
// caller misuse and leaves the day list untouched.
func Reconcile(days []models.DayPlan, newStart, newEnd string) []models.DayPlan {
	if newStart == "" || newEnd == "" {
		out := models.CloneDays(days)
		for i := range out {
			out[i].DayNumber = i + 1
			out[i].Date = models.DateForDay("", i+1)
		}
		if len(out) == 0 {
			out = append(out, emptyDay("", 1))
		}
		return out
	}

	n := models.DaysBetween(newStart, newEnd)
	if n == 0 {
		// Inverted or unparseable range; the caller should have clamped.
		return models.CloneDays(days)
	}

	byNumber := make(map[int]models.DayPlan, len(days))
	for _, day := range days {
		byNumber[day.DayNumber] = day
	}

	out := make([]models.DayPlan, 0, n)
	for num := 1; num <= n; num++ {
		day := emptyDay(newStart, num)
		if existing, ok := byNumber[num]; ok {
			day.Items = make([]models.DisplayItem, len(existing.Items))
			copy(day.Items, existing.Items)
		}
		out = append(out, day)
	}
	return out
}

func emptyDay(startDate string, dayNumber int) models.DayPlan {
	return models.DayPlan{
		DayNumber: dayNumber,
		Date:      models.DateForDay(startDate, dayNumber),
		Items:     []models.DisplayItem{},
	}
}
