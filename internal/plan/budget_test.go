package plan

import (
	"math"
	"testing"

	"wayfare/internal/models"
)

func priced(name string, price float64) models.DisplayItem {
	item := models.NewCustomItem(name)
	item.Price = price
	return item
}

func TestTotalCost_SumsAcrossDays(t *testing.T) {
	days := []models.DayPlan{
		{DayNumber: 1, Items: []models.DisplayItem{priced("Tickets", 120), priced("Lunch", 80)}},
		{DayNumber: 2, Items: []models.DisplayItem{priced("Hotel", 220)}},
	}

	if got := TotalCost(days); got != 420 {
		t.Errorf("expected total 420, got %v", got)
	}
}

func TestDayCost_SkipsNonFinitePrices(t *testing.T) {
	items := []models.DisplayItem{
		{Name: "ok", Price: 50},
		{Name: "nan", Price: math.NaN()},
		{Name: "inf", Price: math.Inf(1)},
	}

	if got := DayCost(items); got != 50 {
		t.Errorf("expected 50, got %v", got)
	}
}

func TestExceeded(t *testing.T) {
	days := []models.DayPlan{
		{DayNumber: 1, Items: []models.DisplayItem{priced("Hotel", 300)}},
	}

	over := 250.0
	under := 350.0
	zero := 0.0

	if !Exceeded(days, &over) {
		t.Errorf("300 should exceed a 250 budget")
	}
	if Exceeded(days, &under) {
		t.Errorf("300 should not exceed a 350 budget")
	}
	if Exceeded(days, &zero) {
		t.Errorf("a zero budget never reports exceeded")
	}
	if Exceeded(days, nil) {
		t.Errorf("an unset budget never reports exceeded")
	}
}
