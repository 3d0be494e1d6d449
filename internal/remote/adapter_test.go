package remote

import (
	"encoding/json"
	"testing"

	"wayfare/internal/models"
)

func strptr(s string) *string { return &s }

func numptr(v float64) *FlexNumber {
	n := Num(v)
	return &n
}

func TestImport_PricePrecedence(t *testing.T) {
	rt := Itinerary{
		ID:        7,
		Title:     "Kyoto",
		StartDate: strptr("2026-05-01"),
		EndDate:   strptr("2026-05-01"),
		DaysList: []DayRecord{{
			DayNumber: 1,
			Items: []ItemRecord{
				{
					ID: 1, ItemType: "scenic", Name: "Castle", Order: 1,
					Price:      numptr(99),
					ScenicSpot: &ScenicSpot{TicketPrice: Num(30)},
				},
				{
					ID: 2, ItemType: "hotel", Name: "Inn", Order: 2,
					Hotel: &Hotel{Price: Num(220)},
				},
				{
					ID: 3, ItemType: "transport", Name: "Shinkansen", Order: 3,
					Transport: &Transport{Price: Num(130), Type: "train"},
				},
				{
					ID: 4, ItemType: "scenic", Name: "Garden", Order: 4,
					Price: numptr(12),
				},
				{
					ID: 5, ItemType: "activity", Name: "Walk", Order: 5,
				},
			},
		}},
	}

	state := Import(rt, models.ShadowDates{})
	items := state.Days[0].Items

	wantPrices := []float64{30, 220, 130, 12, 0}
	for i, want := range wantPrices {
		if items[i].Price != want {
			t.Errorf("item %d (%s): expected price %v, got %v", i, items[i].Name, want, items[i].Price)
		}
	}
	if items[2].TransportKind != "train" {
		t.Errorf("expected transport kind carried over, got %q", items[2].TransportKind)
	}
}

func TestImport_SortsByOrderField(t *testing.T) {
	rt := Itinerary{
		ID:        1,
		StartDate: strptr("2026-05-01"),
		EndDate:   strptr("2026-05-01"),
		DaysList: []DayRecord{{
			DayNumber: 1,
			Items: []ItemRecord{
				{ID: 1, ItemType: "activity", Name: "Third", Order: 3},
				{ID: 2, ItemType: "activity", Name: "First", Order: 1},
				{ID: 3, ItemType: "activity", Name: "Second", Order: 2},
			},
		}},
	}

	state := Import(rt, models.ShadowDates{})
	items := state.Days[0].Items

	want := []string{"First", "Second", "Third"}
	for i := range want {
		if items[i].Name != want[i] {
			t.Fatalf("expected order %v, got %s at %d", want, items[i].Name, i)
		}
	}
}

func TestImport_SparseDayNumbersGetEmptyDays(t *testing.T) {
	rt := Itinerary{
		ID: 1,
		DaysList: []DayRecord{
			{DayNumber: 3, Items: []ItemRecord{{ID: 1, ItemType: "activity", Name: "Late", Order: 1}}},
		},
	}

	state := Import(rt, models.ShadowDates{})

	if len(state.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(state.Days))
	}
	if len(state.Days[0].Items) != 0 || len(state.Days[1].Items) != 0 {
		t.Errorf("gap days should be empty")
	}
	if len(state.Days[2].Items) != 1 {
		t.Errorf("day 3 should hold the item")
	}
}

func TestImport_MissingDaysListYieldsOneDay(t *testing.T) {
	state := Import(Itinerary{ID: 1, Title: "Bare"}, models.ShadowDates{})

	if len(state.Days) != 1 {
		t.Fatalf("expected one day minimum, got %d", len(state.Days))
	}
	if state.Days[0].Date != "Day 1" {
		t.Errorf("expected placeholder date, got %q", state.Days[0].Date)
	}
}

func TestImport_ShadowDatesPatchNullResponse(t *testing.T) {
	shadow := models.ShadowDates{StartDate: "2026-05-01", EndDate: "2026-05-03"}

	state := Import(Itinerary{ID: 1, Title: "Kyoto"}, shadow)

	if state.StartDate != "2026-05-01" || state.EndDate != "2026-05-03" {
		t.Errorf("expected shadow dates applied, got %q / %q", state.StartDate, state.EndDate)
	}
	if len(state.Days) != 3 {
		t.Errorf("expected 3 days from shadow range, got %d", len(state.Days))
	}
}

func TestImport_BudgetSetsManualMode(t *testing.T) {
	state := Import(Itinerary{ID: 1, EstimatedBudget: numptr(500)}, models.ShadowDates{})
	if state.Budget == nil || *state.Budget != 500 {
		t.Fatalf("expected budget 500, got %v", state.Budget)
	}
	if state.BudgetMode != models.BudgetManual {
		t.Errorf("a set budget implies manual mode, got %q", state.BudgetMode)
	}

	state = Import(Itinerary{ID: 1}, models.ShadowDates{})
	if state.Budget != nil || state.BudgetMode != models.BudgetAuto {
		t.Errorf("no budget implies auto mode, got %v %q", state.Budget, state.BudgetMode)
	}
}

func TestExport_RenumbersOrderFromPosition(t *testing.T) {
	state := models.NewItinerary("Kyoto", 1)
	state.Days[0].Items = []models.DisplayItem{
		models.NewCustomItem("A"),
		models.NewCustomItem("B"),
		models.NewCustomItem("C"),
	}

	out := Export(state, models.StatusDraft, false)

	for i, rec := range out.DaysList[0].Items {
		if rec.Order != i+1 {
			t.Errorf("position %d: expected order %d, got %d", i, i+1, rec.Order)
		}
	}
}

func TestExport_StartTimeRangeCollapses(t *testing.T) {
	item := models.NewCustomItem("Temple")
	item.StartTime = "07:30-17:30"
	state := models.NewItinerary("Kyoto", 1)
	state.Days[0].Items = []models.DisplayItem{item}

	out := Export(state, models.StatusDraft, false)

	if got := out.DaysList[0].Items[0].StartTime; got != "07:30" {
		t.Errorf("expected 07:30, got %q", got)
	}
}

func TestExport_EmptyDatesAreNull(t *testing.T) {
	state := models.NewItinerary("Kyoto", 1)

	out := Export(state, models.StatusDraft, false)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(raw["startDate"]) != "null" || string(raw["endDate"]) != "null" {
		t.Errorf("unset dates must serialize as null, got %s / %s", raw["startDate"], raw["endDate"])
	}
}

func TestExport_CustomItemsCarryZeroItemID(t *testing.T) {
	state := models.NewItinerary("Kyoto", 1)
	custom := models.NewCustomItem("Walk")
	catalog := models.NewItem(models.KindAttraction, "42", "Castle")
	state.Days[0].Items = []models.DisplayItem{custom, catalog}

	out := Export(state, models.StatusDraft, false)

	recs := out.DaysList[0].Items
	if recs[0].ItemID != 0 {
		t.Errorf("custom item should export itemId 0, got %d", recs[0].ItemID)
	}
	if recs[1].ItemID != 42 {
		t.Errorf("catalog item should export its referent id, got %d", recs[1].ItemID)
	}
	if recs[0].ItemType != "activity" || recs[1].ItemType != "scenic" {
		t.Errorf("kind mapping wrong: %q %q", recs[0].ItemType, recs[1].ItemType)
	}
}

func TestRoundTrip_PreservesStructure(t *testing.T) {
	state := models.NewItinerary("Kyoto", 2)
	state.StartDate = "2026-05-01"
	state.EndDate = "2026-05-02"
	state.Days[0].Date = "2026-05-01"
	state.Days[1].Date = "2026-05-02"
	a := models.NewItem(models.KindAttraction, "11", "Castle")
	a.Price = 30
	b := models.NewCustomItem("Dinner")
	b.Price = 45
	state.Days[0].Items = []models.DisplayItem{a}
	state.Days[1].Items = []models.DisplayItem{b}

	exported := Export(state, models.StatusDraft, false)
	exported.ID = 9
	back := Import(exported, state.Shadow)

	if len(back.Days) != 2 {
		t.Fatalf("expected 2 days back, got %d", len(back.Days))
	}
	if back.Days[0].Items[0].Name != "Castle" || back.Days[1].Items[0].Name != "Dinner" {
		t.Errorf("items lost in round trip")
	}
	if back.Days[0].Items[0].Price != 30 {
		t.Errorf("catalog item price lost in round trip: got %v", back.Days[0].Items[0].Price)
	}
	if back.Days[1].Items[0].Price != 45 {
		t.Errorf("custom item price lost in round trip: got %v", back.Days[1].Items[0].Price)
	}
	if back.Days[1].Items[0].Kind != models.KindCustom {
		t.Errorf("custom kind lost in round trip")
	}
	if back.RemoteID != 9 {
		t.Errorf("remote id lost in round trip")
	}
}

func TestExport_WritesTopLevelPrice(t *testing.T) {
	item := models.NewCustomItem("Dinner")
	item.Price = 45
	state := models.NewItinerary("Kyoto", 1)
	state.Days[0].Items = []models.DisplayItem{item}

	out := Export(state, models.StatusDraft, false)

	rec := out.DaysList[0].Items[0]
	if rec.Price == nil || !rec.Price.Set || rec.Price.Value != 45 {
		t.Fatalf("expected exported price 45, got %+v", rec.Price)
	}
}

func TestFlexNumber_Decoding(t *testing.T) {
	cases := []struct {
		in    string
		value float64
		set   bool
	}{
		{`120.5`, 120.5, true},
		{`"88"`, 88, true},
		{`" 15.5 "`, 15.5, true},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, false},
	}
	for _, c := range cases {
		var n FlexNumber
		if err := json.Unmarshal([]byte(c.in), &n); err != nil {
			t.Errorf("input %s: unexpected error %v", c.in, err)
			continue
		}
		if n.Set != c.set || n.Value != c.value {
			t.Errorf("input %s: got (%v, %v), want (%v, %v)", c.in, n.Value, n.Set, c.value, c.set)
		}
	}
}
