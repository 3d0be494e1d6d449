package plan

import (
	"wayfare/internal/models"
)

// ReorderWithinDay moves the item at fromIndex to toIndex inside one day's
// list and returns a fresh day slice. Out-of-range or equal indices reduce to
// a no-op copy; total item count across days never changes.
func ReorderWithinDay(days []models.DayPlan, dayIndex, fromIndex, toIndex int) []models.DayPlan {
	out := models.CloneDays(days)
	if dayIndex < 0 || dayIndex >= len(out) {
		return out
	}
	items := out[dayIndex].Items
	if fromIndex < 0 || fromIndex >= len(items) || toIndex < 0 || toIndex >= len(items) || fromIndex == toIndex {
		return out
	}

	moved := items[fromIndex]
	items = append(items[:fromIndex], items[fromIndex+1:]...)
	items = append(items, models.DisplayItem{})
	copy(items[toIndex+1:], items[toIndex:])
	items[toIndex] = moved
	out[dayIndex].Items = items
	return out
}

// MoveAcrossDays transfers one item from a source day to a destination day,
// inserting at insertAt (a negative or oversized index appends). The moved
// item keeps its identity; only its owning day changes. Invalid indices
// reduce to a no-op copy.
func MoveAcrossDays(days []models.DayPlan, fromDayIndex, toDayIndex, itemIndex, insertAt int) []models.DayPlan {
	out := models.CloneDays(days)
	if fromDayIndex < 0 || fromDayIndex >= len(out) || toDayIndex < 0 || toDayIndex >= len(out) {
		return out
	}
	if fromDayIndex == toDayIndex {
		return ReorderWithinDay(days, fromDayIndex, itemIndex, clampInsert(insertAt, len(out[fromDayIndex].Items)-1))
	}

	src := out[fromDayIndex].Items
	if itemIndex < 0 || itemIndex >= len(src) {
		return out
	}

	moved := src[itemIndex]
	out[fromDayIndex].Items = append(src[:itemIndex], src[itemIndex+1:]...)

	dst := out[toDayIndex].Items
	at := clampInsert(insertAt, len(dst))
	dst = append(dst, models.DisplayItem{})
	copy(dst[at+1:], dst[at:])
	dst[at] = moved
	out[toDayIndex].Items = dst
	return out
}

func clampInsert(at, max int) int {
	if at < 0 || at > max {
		return max
	}
	return at
}
