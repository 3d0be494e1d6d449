package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"wayfare/internal/constants"
)

// ItemKind discriminates the closed set of itinerary entry variants.
type ItemKind string

const (
	KindAttraction ItemKind = "attraction"
	KindLodging    ItemKind = "lodging"
	KindTransport  ItemKind = "transport"
	KindCustom     ItemKind = "custom"
)

// Status is the itinerary lifecycle state on the remote service.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// BudgetMode controls whether the budget is derived from item prices or
// entered by the user.
type BudgetMode string

const (
	BudgetAuto   BudgetMode = "auto"
	BudgetManual BudgetMode = "manual"
)

// DisplayItem is the local editable representation of one itinerary entry.
// Construct through NewItem/NewCustomItem so downstream logic can assume
// fully-populated records.
type DisplayItem struct {
	LocalID       string   `json:"local_id"`
	RemoteID      int64    `json:"remote_id,omitempty"`
	ReferentID    string   `json:"referent_id"`
	Kind          ItemKind `json:"kind"`
	Name          string   `json:"name"`
	Image         string   `json:"image,omitempty"`
	Address       string   `json:"address,omitempty"`
	Description   string   `json:"description,omitempty"`
	StartTime     string   `json:"start_time,omitempty"`
	EndTime       string   `json:"end_time,omitempty"`
	Price         float64  `json:"price"`
	Rating        float64  `json:"rating,omitempty"`
	TransportKind string   `json:"transport_kind,omitempty"`
}

// DayPlan is one calendar day's ordered list of itinerary items. Item order
// is significant and persisted.
type DayPlan struct {
	DayNumber int           `json:"day_number"`
	Date      string        `json:"date"`
	Items     []DisplayItem `json:"items"`
}

// ShadowDates is the locally retained last-known-good date range. It papers
// over remote responses that come back with null dates and is never sent
// upstream as authoritative.
type ShadowDates struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ItineraryState is the root editable model for one itinerary. RemoteID is 0
// until the itinerary has been persisted on the service. DraftKey identifies
// the local draft across sessions.
type ItineraryState struct {
	DraftKey    string      `json:"draft_key"`
	RemoteID    int64       `json:"remote_id,omitempty"`
	Title       string      `json:"title"`
	StartDate   string      `json:"start_date,omitempty"`
	EndDate     string      `json:"end_date,omitempty"`
	Days        []DayPlan   `json:"days"`
	Budget      *float64    `json:"budget,omitempty"`
	BudgetMode  BudgetMode  `json:"budget_mode"`
	Notes       string      `json:"notes,omitempty"`
	Destination string      `json:"destination,omitempty"`
	Cover       string      `json:"cover,omitempty"`
	IsPublic    bool        `json:"is_public"`
	Status      Status      `json:"status"`
	Shadow      ShadowDates `json:"shadow_dates"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

// NewItem builds a normalized DisplayItem backed by a catalog entity.
func NewItem(kind ItemKind, referentID, name string) DisplayItem {
	item := DisplayItem{
		LocalID:    uuid.NewString(),
		ReferentID: referentID,
		Kind:       kind,
		Name:       name,
	}
	return Normalize(item)
}

// NewCustomItem builds a free-text activity with a synthetic referent id.
func NewCustomItem(name string) DisplayItem {
	item := DisplayItem{
		LocalID:    uuid.NewString(),
		ReferentID: "custom-" + uuid.NewString(),
		Kind:       KindCustom,
		Name:       name,
	}
	return Normalize(item)
}

// Normalize fills defaults once so every consumer sees a fully-populated
// record: blank local ids are assigned, unknown kinds become custom, and
// unresolved prices collapse to 0.
func Normalize(item DisplayItem) DisplayItem {
	if item.LocalID == "" {
		item.LocalID = uuid.NewString()
	}
	switch item.Kind {
	case KindAttraction, KindLodging, KindTransport, KindCustom:
	default:
		item.Kind = KindCustom
	}
	if item.Name == "" {
		item.Name = "Unnamed activity"
	}
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price < 0 {
		item.Price = 0
	}
	if math.IsNaN(item.Rating) || math.IsInf(item.Rating, 0) {
		item.Rating = 0
	}
	return item
}

// NewItinerary builds an empty draft with the given day count. Dates stay
// undecided; days get placeholder labels.
func NewItinerary(title string, dayCount int) ItineraryState {
	if title == "" {
		title = constants.DefaultTitle
	}
	if dayCount < 1 {
		dayCount = 1
	}
	days := make([]DayPlan, dayCount)
	for i := range days {
		days[i] = DayPlan{
			DayNumber: i + 1,
			Date:      DateForDay("", i+1),
			Items:     []DisplayItem{},
		}
	}
	return ItineraryState{
		DraftKey:   uuid.NewString(),
		Title:      title,
		Days:       days,
		BudgetMode: BudgetAuto,
		Status:     StatusDraft,
	}
}

// DateForDay derives the display date for a 1-based day number: start date
// plus (dayNumber-1) days, or a placeholder label while no start date exists.
func DateForDay(startDate string, dayNumber int) string {
	if startDate == "" {
		return fmt.Sprintf(constants.DayPlaceholderFormat, dayNumber)
	}
	start, err := time.Parse(constants.DateFormat, startDate)
	if err != nil {
		return fmt.Sprintf(constants.DayPlaceholderFormat, dayNumber)
	}
	return start.AddDate(0, 0, dayNumber-1).Format(constants.DateFormat)
}

// DaysBetween returns the inclusive day count of a date range, or 0 when
// either bound is absent or malformed or the range is inverted.
func DaysBetween(startDate, endDate string) int {
	if startDate == "" || endDate == "" {
		return 0
	}
	start, err := time.Parse(constants.DateFormat, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.DateFormat, endDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Clone returns a deep copy of the state. The store hands out clones so no
// caller can alias its internal day or item slices.
func (s ItineraryState) Clone() ItineraryState {
	out := s
	out.Days = CloneDays(s.Days)
	if s.Budget != nil {
		b := *s.Budget
		out.Budget = &b
	}
	return out
}

// CloneDays deep-copies a day list including each day's item slice.
func CloneDays(days []DayPlan) []DayPlan {
	out := make([]DayPlan, len(days))
	for i, day := range days {
		items := make([]DisplayItem, len(day.Items))
		copy(items, day.Items)
		out[i] = DayPlan{
			DayNumber: day.DayNumber,
			Date:      day.Date,
			Items:     items,
		}
	}
	return out
}

// ItemCount totals items across all days.
func ItemCount(days []DayPlan) int {
	n := 0
	for _, day := range days {
		n += len(day.Items)
	}
	return n
}

// DisplayDate formats a date range for listings, tolerating unset bounds.
func (s ItineraryState) DisplayDate() string {
	switch {
	case s.StartDate == "" && s.EndDate == "":
		return "dates undecided"
	case s.EndDate == "":
		return "from " + s.StartDate
	default:
		return s.StartDate + " to " + s.EndDate
	}
}

// Summary is a one-line listing label for CLI output.
func (s ItineraryState) Summary() string {
	var b strings.Builder
	b.WriteString(s.Title)
	if s.Destination != "" {
		b.WriteString(" - ")
		b.WriteString(s.Destination)
	}
	fmt.Fprintf(&b, " (%s, %d days)", s.DisplayDate(), len(s.Days))
	return b.String()
}
