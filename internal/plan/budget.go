package plan

import (
	"math"

	"wayfare/internal/models"
)

// DayCost sums item prices for one day. Missing or non-finite prices count
// as 0 so a single unresolved catalog price cannot poison the total.
func DayCost(items []models.DisplayItem) float64 {
	total := 0.0
	for _, item := range items {
		price := item.Price
		if math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		total += price
	}
	return total
}

// TotalCost sums DayCost over every day.
func TotalCost(days []models.DayPlan) float64 {
	total := 0.0
	for _, day := range days {
		total += DayCost(day.Items)
	}
	return total
}

// Exceeded reports whether the derived total is over the configured budget.
// Only meaningful for a set, positive budget; otherwise always false.
func Exceeded(days []models.DayPlan, budget *float64) bool {
	if budget == nil || *budget <= 0 {
		return false
	}
	return TotalCost(days) > *budget
}
