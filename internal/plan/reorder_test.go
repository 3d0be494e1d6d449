package plan

import (
	"testing"

	"wayfare/internal/models"
)

func names(items []models.DisplayItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestReorderWithinDay_MovesItem(t *testing.T) {
	days := []models.DayPlan{day(1, "2026-05-01", "A", "B", "C")}

	out := ReorderWithinDay(days, 0, 0, 2)

	got := names(out[0].Items)
	want := []string{"B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestReorderWithinDay_OutOfRangeIsNoOp(t *testing.T) {
	days := []models.DayPlan{day(1, "2026-05-01", "A", "B")}

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {1, 1}} {
		out := ReorderWithinDay(days, 0, c[0], c[1])
		got := names(out[0].Items)
		if got[0] != "A" || got[1] != "B" {
			t.Errorf("indices %v: expected no-op, got %v", c, got)
		}
	}
}

func TestMoveAcrossDays_MovesItemBetweenDays(t *testing.T) {
	days := []models.DayPlan{
		day(1, "2026-05-01", "A", "B"),
		day(2, "2026-05-02", "C"),
	}
	movedID := days[0].Items[0].LocalID

	out := MoveAcrossDays(days, 0, 1, 0, 0)

	if len(out[0].Items) != 1 || out[0].Items[0].Name != "B" {
		t.Errorf("source day wrong after move: %v", names(out[0].Items))
	}
	if len(out[1].Items) != 2 || out[1].Items[0].Name != "A" {
		t.Errorf("destination day wrong after move: %v", names(out[1].Items))
	}
	if out[1].Items[0].LocalID != movedID {
		t.Errorf("moved item must keep its identity")
	}
	if models.ItemCount(out) != models.ItemCount(days) {
		t.Errorf("item count changed: %d != %d", models.ItemCount(out), models.ItemCount(days))
	}
}

func TestMoveAcrossDays_NegativeInsertAppends(t *testing.T) {
	days := []models.DayPlan{
		day(1, "2026-05-01", "A"),
		day(2, "2026-05-02", "B", "C"),
	}

	out := MoveAcrossDays(days, 0, 1, 0, -1)

	got := names(out[1].Items)
	if got[len(got)-1] != "A" {
		t.Errorf("expected A appended, got %v", got)
	}
}

func TestMoveAcrossDays_OversizedInsertAppends(t *testing.T) {
	days := []models.DayPlan{
		day(1, "2026-05-01", "A"),
		day(2, "2026-05-02", "B"),
	}

	out := MoveAcrossDays(days, 0, 1, 0, 99)

	got := names(out[1].Items)
	if len(got) != 2 || got[1] != "A" {
		t.Errorf("expected A appended, got %v", got)
	}
}

func TestMoveAcrossDays_SameDayDelegatesToReorder(t *testing.T) {
	days := []models.DayPlan{day(1, "2026-05-01", "A", "B", "C")}

	out := MoveAcrossDays(days, 0, 0, 2, 0)

	got := names(out[0].Items)
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if models.ItemCount(out) != 3 {
		t.Errorf("same-day move changed item count")
	}
}

func TestMoveAcrossDays_InvalidIndicesAreNoOp(t *testing.T) {
	days := []models.DayPlan{
		day(1, "2026-05-01", "A"),
		day(2, "2026-05-02"),
	}

	for _, c := range [][3]int{{-1, 1, 0}, {0, 5, 0}, {0, 1, 3}} {
		out := MoveAcrossDays(days, c[0], c[1], c[2], 0)
		if models.ItemCount(out) != 1 || len(out[0].Items) != 1 {
			t.Errorf("case %v: expected no-op", c)
		}
	}
}

func TestMoveAcrossDays_DoesNotMutateInput(t *testing.T) {
	days := []models.DayPlan{
		day(1, "2026-05-01", "A", "B"),
		day(2, "2026-05-02", "C"),
	}

	MoveAcrossDays(days, 0, 1, 0, 0)

	if len(days[0].Items) != 2 || len(days[1].Items) != 1 {
		t.Errorf("input slice was mutated")
	}
}
