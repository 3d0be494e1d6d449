package models

import (
	"math"
	"testing"
)

func TestNewItinerary_Defaults(t *testing.T) {
	state := NewItinerary("", 0)

	if state.Title != "Untitled trip" {
		t.Errorf("expected default title, got %q", state.Title)
	}
	if len(state.Days) != 1 {
		t.Errorf("expected at least one day, got %d", len(state.Days))
	}
	if state.Days[0].Date != "Day 1" {
		t.Errorf("expected placeholder label, got %q", state.Days[0].Date)
	}
	if state.BudgetMode != BudgetAuto {
		t.Errorf("expected auto budget mode, got %q", state.BudgetMode)
	}
	if state.Status != StatusDraft {
		t.Errorf("expected draft status, got %q", state.Status)
	}
	if state.DraftKey == "" {
		t.Errorf("expected a draft key")
	}
}

func TestNormalize(t *testing.T) {
	item := Normalize(DisplayItem{Kind: "banana", Price: -5, Rating: math.NaN()})

	if item.Kind != KindCustom {
		t.Errorf("unknown kind should become custom, got %q", item.Kind)
	}
	if item.Price != 0 {
		t.Errorf("negative price should collapse to 0, got %v", item.Price)
	}
	if item.Rating != 0 {
		t.Errorf("NaN rating should collapse to 0, got %v", item.Rating)
	}
	if item.LocalID == "" {
		t.Errorf("blank local id should be assigned")
	}
	if item.Name == "" {
		t.Errorf("blank name should get a default")
	}
}

func TestDateForDay(t *testing.T) {
	if got := DateForDay("2026-05-01", 3); got != "2026-05-03" {
		t.Errorf("expected 2026-05-03, got %q", got)
	}
	if got := DateForDay("", 2); got != "Day 2" {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := DateForDay("not-a-date", 2); got != "Day 2" {
		t.Errorf("malformed start should fall back to placeholder, got %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2026-05-01", "2026-05-01", 1},
		{"2026-05-01", "2026-05-05", 5},
		{"2026-05-05", "2026-05-01", 0},
		{"", "2026-05-01", 0},
		{"2026-05-01", "", 0},
		{"garbage", "2026-05-01", 0},
	}
	for _, c := range cases {
		if got := DaysBetween(c.start, c.end); got != c.want {
			t.Errorf("DaysBetween(%q, %q) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	budget := 100.0
	state := NewItinerary("Kyoto", 2)
	state.Budget = &budget
	state.Days[0].Items = []DisplayItem{NewCustomItem("Temple")}

	clone := state.Clone()
	clone.Days[0].Items[0].Name = "Changed"
	*clone.Budget = 999

	if state.Days[0].Items[0].Name != "Temple" {
		t.Errorf("clone aliases the item slice")
	}
	if *state.Budget != 100 {
		t.Errorf("clone aliases the budget pointer")
	}
}
