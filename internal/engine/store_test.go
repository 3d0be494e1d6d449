package engine

import (
	"fmt"
	"testing"

	"wayfare/internal/models"
)

func countMutations(s *Store) *int {
	n := 0
	s.OnMutate(func() { n++ })
	return &n
}

func TestSetDates_ReconcilesDays(t *testing.T) {
	s := New("Kyoto", 2)

	if err := s.SetDates("2026-05-01", "2026-05-04"); err != nil {
		t.Fatalf("SetDates failed: %v", err)
	}

	state := s.State()
	if len(state.Days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(state.Days))
	}
	if state.Days[3].Date != "2026-05-04" {
		t.Errorf("expected computed date, got %q", state.Days[3].Date)
	}
	if state.Shadow.StartDate != "2026-05-01" || state.Shadow.EndDate != "2026-05-04" {
		t.Errorf("shadow dates not refreshed: %+v", state.Shadow)
	}
}

func TestSetDates_RejectsInvertedRange(t *testing.T) {
	s := New("Kyoto", 2)

	if err := s.SetDates("2026-05-04", "2026-05-01"); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if len(s.State().Days) != 2 {
		t.Errorf("rejected range must leave days untouched")
	}
}

func TestSetDates_RejectsMalformedDate(t *testing.T) {
	s := New("Kyoto", 2)
	if err := s.SetDates("05/01/2026", "2026-05-04"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestClearDates_KeepsItems(t *testing.T) {
	s := New("Kyoto", 1)
	if err := s.SetDates("2026-05-01", "2026-05-03"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddItem(3, models.NewCustomItem("Temple")); err != nil {
		t.Fatal(err)
	}

	s.ClearDates()

	state := s.State()
	if len(state.Days) != 3 {
		t.Fatalf("clearing dates must keep all days, got %d", len(state.Days))
	}
	if len(state.Days[2].Items) != 1 {
		t.Errorf("clearing dates must keep items")
	}
	if state.Days[0].Date != "Day 1" {
		t.Errorf("expected placeholder label, got %q", state.Days[0].Date)
	}
}

func TestAddRemoveItem(t *testing.T) {
	s := New("Kyoto", 2)
	item := models.NewCustomItem("Temple")

	if err := s.AddItem(2, item); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := s.AddItem(5, item); err == nil {
		t.Errorf("expected error for out-of-range day")
	}

	if err := s.RemoveItem(2, item.LocalID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := s.RemoveItem(2, item.LocalID); err == nil {
		t.Errorf("expected error for missing item")
	}
	if models.ItemCount(s.State().Days) != 0 {
		t.Errorf("expected empty itinerary")
	}
}

func TestAutoBudget_FollowsItemChanges(t *testing.T) {
	s := New("Kyoto", 1)
	item := models.NewCustomItem("Tickets")
	item.Price = 120

	if err := s.AddItem(1, item); err != nil {
		t.Fatal(err)
	}

	state := s.State()
	if state.Budget == nil || *state.Budget != 120 {
		t.Fatalf("auto budget should track cost, got %v", state.Budget)
	}

	if err := s.RemoveItem(1, item.LocalID); err != nil {
		t.Fatal(err)
	}
	if *s.State().Budget != 0 {
		t.Errorf("auto budget should drop with the item")
	}
}

func TestManualBudget_IgnoresItemChanges(t *testing.T) {
	s := New("Kyoto", 1)
	s.SetBudgetManual(500)

	item := models.NewCustomItem("Hotel")
	item.Price = 900
	if err := s.AddItem(1, item); err != nil {
		t.Fatal(err)
	}

	state := s.State()
	if *state.Budget != 500 {
		t.Errorf("manual budget must not move, got %v", *state.Budget)
	}
	if !s.BudgetExceeded() {
		t.Errorf("900 should exceed a 500 budget")
	}

	s.SetBudgetAuto()
	if *s.State().Budget != 900 {
		t.Errorf("switching to auto should re-derive, got %v", *s.State().Budget)
	}
}

func TestMutationsNotify(t *testing.T) {
	s := New("Kyoto", 2)
	n := countMutations(s)

	s.SetTitle("Osaka")
	s.SetDestination("Osaka")
	if err := s.AddItem(1, models.NewCustomItem("Walk")); err != nil {
		t.Fatal(err)
	}

	if *n != 3 {
		t.Errorf("expected 3 notifications, got %d", *n)
	}
}

func TestEqualWritesDoNotNotify(t *testing.T) {
	s := New("Kyoto", 2)
	n := countMutations(s)

	s.SetTitle("Kyoto")
	s.SetDestination("")
	s.ClearDates()

	if *n != 0 {
		t.Errorf("no-op writes must not notify, got %d", *n)
	}
}

func TestReplace_DoesNotNotifyAndPreservesLocalFields(t *testing.T) {
	s := New("Kyoto", 1)
	s.SetBudgetManual(300)
	original := s.State()
	n := countMutations(s)

	incoming := models.NewItinerary("From server", 2)
	incoming.DraftKey = ""
	incoming.BudgetMode = ""
	incoming.RemoteID = 77
	s.Replace(incoming)

	state := s.State()
	if *n != 0 {
		t.Errorf("Replace must never trigger autosave notifications, got %d", *n)
	}
	if state.DraftKey != original.DraftKey {
		t.Errorf("draft key must survive a replace")
	}
	if state.BudgetMode != models.BudgetManual {
		t.Errorf("budget mode must survive a replace, got %q", state.BudgetMode)
	}
	if state.RemoteID != 77 {
		t.Errorf("remote id lost, got %d", state.RemoteID)
	}
}

func TestState_ReturnsClone(t *testing.T) {
	s := New("Kyoto", 1)
	if err := s.AddItem(1, models.NewCustomItem("Temple")); err != nil {
		t.Fatal(err)
	}

	state := s.State()
	state.Days[0].Items[0].Name = "Hacked"

	if s.State().Days[0].Items[0].Name != "Temple" {
		t.Errorf("State must hand out deep clones")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := New("Kyoto", 3)

	// Mirror the autosave shape: a timer goroutine snapshotting and replacing
	// state while the command goroutine keeps editing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			snapshot := s.State()
			_ = s.TotalCost()
			s.Replace(snapshot)
		}
	}()

	for i := 0; i < 200; i++ {
		s.SetTitle(fmt.Sprintf("Title %d", i))
		if err := s.AddItem(1, models.NewCustomItem("Walk")); err != nil {
			t.Fatal(err)
		}
		s.ReorderItem(1, 0, 0)
	}
	<-done

	if s.State().DraftKey == "" {
		t.Errorf("state corrupted under concurrent access")
	}
}

func TestFromState_RenumbersGappedDays(t *testing.T) {
	raw := models.ItineraryState{
		DraftKey:  "k",
		StartDate: "2026-05-01",
		EndDate:   "2026-05-03",
		Days: []models.DayPlan{
			{DayNumber: 2, Date: "bogus", Items: []models.DisplayItem{models.NewCustomItem("A")}},
			{DayNumber: 2, Date: "bogus"},
			{DayNumber: 9, Date: "bogus", Items: []models.DisplayItem{models.NewCustomItem("B")}},
		},
	}

	state := FromState(raw).State()

	for i, d := range state.Days {
		if d.DayNumber != i+1 {
			t.Errorf("position %d: expected day number %d, got %d", i, i+1, d.DayNumber)
		}
	}
	wantDates := []string{"2026-05-01", "2026-05-02", "2026-05-03"}
	for i, want := range wantDates {
		if state.Days[i].Date != want {
			t.Errorf("day %d: expected date %s, got %s", i+1, want, state.Days[i].Date)
		}
	}
	if models.ItemCount(state.Days) != 2 {
		t.Errorf("renumbering must not drop items, got %d", models.ItemCount(state.Days))
	}
}

func TestFromState_NormalizesLoadedData(t *testing.T) {
	raw := models.ItineraryState{
		DraftKey: "k",
		Days: []models.DayPlan{{
			DayNumber: 1,
			Items:     []models.DisplayItem{{Name: "Thing", Kind: "bogus", Price: -3}},
		}},
	}

	s := FromState(raw)
	state := s.State()

	if state.BudgetMode != models.BudgetAuto {
		t.Errorf("missing budget mode should default to auto")
	}
	if state.Status != models.StatusDraft {
		t.Errorf("missing status should default to draft")
	}
	item := state.Days[0].Items[0]
	if item.Kind != models.KindCustom || item.Price != 0 || item.LocalID == "" {
		t.Errorf("loaded items should be normalized: %+v", item)
	}
}
