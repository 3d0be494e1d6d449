package remote

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"wayfare/internal/constants"
	"wayfare/internal/models"
)

// The adapter translates between the local editable model and the service
// schema. Field shapes differ on both sides (day/order indexing, nested
// price sub-objects, nullable dates), so all of that knowledge lives here
// and nowhere else.

var kindToItemType = map[models.ItemKind]string{
	models.KindAttraction: "scenic",
	models.KindLodging:    "hotel",
	models.KindTransport:  "transport",
	models.KindCustom:     "activity",
}

var itemTypeToKind = map[string]models.ItemKind{
	"scenic":    models.KindAttraction,
	"hotel":     models.KindLodging,
	"transport": models.KindTransport,
	"activity":  models.KindCustom,
}

// Import maps a service itinerary onto a fresh local state. shadow is the
// last known good date range; it patches over the service occasionally
// returning null dates for an itinerary that has them (observed backend
// defect, recovered silently).
func Import(rt Itinerary, shadow models.ShadowDates) models.ItineraryState {
	startDate := stringOrEmpty(rt.StartDate)
	endDate := stringOrEmpty(rt.EndDate)
	if startDate == "" && shadow.StartDate != "" {
		startDate = shadow.StartDate
	}
	if endDate == "" && shadow.EndDate != "" {
		endDate = shadow.EndDate
	}

	title := rt.Title
	if title == "" {
		title = constants.DefaultTitle
	}

	state := models.ItineraryState{
		RemoteID:    rt.ID,
		Title:       title,
		StartDate:   startDate,
		EndDate:     endDate,
		Notes:       rt.Description,
		Destination: rt.City,
		Cover:       rt.Cover,
		IsPublic:    rt.IsPublic,
		Status:      importStatus(rt.Status),
		BudgetMode:  models.BudgetAuto,
	}

	if rt.EstimatedBudget != nil && rt.EstimatedBudget.Set {
		budget := rt.EstimatedBudget.Value
		state.Budget = &budget
		state.BudgetMode = models.BudgetManual
	}

	state.Days = importDays(rt.DaysList, startDate, endDate)

	// Refresh the shadow copy with whatever dates we now consider good.
	if startDate != "" {
		state.Shadow.StartDate = startDate
	}
	if endDate != "" {
		state.Shadow.EndDate = endDate
	}
	return state
}

// importDays builds a contiguous 1-based day list. The service may send no
// day list at all (legacy partial payloads) or sparse day numbers; either
// way the result has every day number from 1 to n with empty item lists
// filling the gaps, and never fewer than one day.
func importDays(records []DayRecord, startDate, endDate string) []models.DayPlan {
	n := models.DaysBetween(startDate, endDate)
	for _, rec := range records {
		if rec.DayNumber > n {
			n = rec.DayNumber
		}
	}
	if n < 1 {
		n = 1
	}

	byNumber := make(map[int]DayRecord, len(records))
	for _, rec := range records {
		byNumber[rec.DayNumber] = rec
	}

	days := make([]models.DayPlan, 0, n)
	for num := 1; num <= n; num++ {
		day := models.DayPlan{
			DayNumber: num,
			Date:      models.DateForDay(startDate, num),
			Items:     []models.DisplayItem{},
		}
		if rec, ok := byNumber[num]; ok {
			day.Items = importItems(rec.Items)
		}
		days = append(days, day)
	}
	return days
}

// importItems maps and orders one day's item records. Arrival order is not
// trusted; the persisted order field decides placement.
func importItems(records []ItemRecord) []models.DisplayItem {
	sorted := make([]ItemRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	items := make([]models.DisplayItem, 0, len(sorted))
	for _, rec := range sorted {
		items = append(items, importItem(rec))
	}
	return items
}

func importItem(rec ItemRecord) models.DisplayItem {
	kind, ok := itemTypeToKind[rec.ItemType]
	if !ok {
		kind = models.KindCustom
	}

	item := models.DisplayItem{
		RemoteID:    rec.ID,
		Kind:        kind,
		Name:        rec.Name,
		Image:       rec.Image,
		Address:     rec.Location,
		Description: rec.Notes,
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		Price:       itemPrice(rec, kind),
	}

	if rec.ID != 0 {
		item.LocalID = "remote-" + strconv.FormatInt(rec.ID, 10)
	}

	switch {
	case rec.ItemID != 0:
		item.ReferentID = strconv.FormatInt(rec.ItemID, 10)
	default:
		item.ReferentID = "custom-" + uuid.NewString()
	}

	switch kind {
	case models.KindAttraction:
		if rec.ScenicSpot != nil && rec.ScenicSpot.Rating.Set {
			item.Rating = rec.ScenicSpot.Rating.Value
		}
	case models.KindLodging:
		if rec.Hotel != nil && rec.Hotel.Rating.Set {
			item.Rating = rec.Hotel.Rating.Value
		}
	case models.KindTransport:
		if rec.Transport != nil {
			item.TransportKind = rec.Transport.Type
		}
	}

	return models.Normalize(item)
}

// itemPrice resolves the kind-dependent price precedence: the attached
// sub-object for the item's kind first, then the top-level price field,
// then 0.
func itemPrice(rec ItemRecord, kind models.ItemKind) float64 {
	switch kind {
	case models.KindAttraction:
		if rec.ScenicSpot != nil && rec.ScenicSpot.TicketPrice.Set {
			return rec.ScenicSpot.TicketPrice.Value
		}
	case models.KindLodging:
		if rec.Hotel != nil && rec.Hotel.Price.Set {
			return rec.Hotel.Price.Value
		}
	case models.KindTransport:
		if rec.Transport != nil && rec.Transport.Price.Set {
			return rec.Transport.Price.Value
		}
	}
	if rec.Price != nil && rec.Price.Set {
		return rec.Price.Value
	}
	return 0
}

// Export maps the local state to the service payload. status and isPublic
// are passed explicitly because publish and draft save share the same export
// path and differ only here plus in validation.
func Export(state models.ItineraryState, status models.Status, isPublic bool) Itinerary {
	out := Itinerary{
		ID:          state.RemoteID,
		Title:       state.Title,
		StartDate:   nullableDate(state.StartDate),
		EndDate:     nullableDate(state.EndDate),
		Description: state.Notes,
		City:        state.Destination,
		Cover:       state.Cover,
		IsPublic:    isPublic,
		Status:      string(status),
	}

	if state.Budget != nil {
		budget := Num(*state.Budget)
		out.EstimatedBudget = &budget
	}

	out.DaysList = make([]DayRecord, 0, len(state.Days))
	for _, day := range state.Days {
		rec := DayRecord{
			DayNumber: day.DayNumber,
			Items:     make([]ItemRecord, 0, len(day.Items)),
		}
		for pos, item := range day.Items {
			rec.Items = append(rec.Items, exportItem(item, pos+1))
		}
		out.DaysList = append(out.DaysList, rec)
	}
	return out
}

func exportItem(item models.DisplayItem, order int) ItemRecord {
	// The sub-objects carrying catalog prices belong to the service; the
	// export writes the resolved price to the top-level field, which import
	// reads as its fallback.
	price := Num(item.Price)
	return ItemRecord{
		ID:        item.RemoteID,
		ItemID:    referentToItemID(item),
		ItemType:  kindToItemType[item.Kind],
		Name:      item.Name,
		Image:     item.Image,
		Location:  item.Address,
		StartTime: firstTimeComponent(item.StartTime),
		EndTime:   item.EndTime,
		Notes:     item.Description,
		Price:     &price,
		// Order is recomputed from list position at export time; local state
		// never renumbers eagerly during reordering.
		Order: order,
	}
}

// referentToItemID coerces the referent id to the service's numeric form.
// Custom items carry synthetic non-numeric ids and map to 0.
func referentToItemID(item models.DisplayItem) int64 {
	if item.Kind == models.KindCustom {
		return 0
	}
	id, err := strconv.ParseInt(item.ReferentID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// firstTimeComponent collapses a range string like "07:30-17:30" to its
// first component. The service field is a single instant, not a range.
func firstTimeComponent(t string) string {
	first, _, found := strings.Cut(t, "-")
	if !found {
		return t
	}
	return strings.TrimSpace(first)
}

func nullableDate(date string) *string {
	if date == "" {
		return nil
	}
	return &date
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func importStatus(status string) models.Status {
	if status == string(models.StatusPublished) {
		return models.StatusPublished
	}
	return models.StatusDraft
}
