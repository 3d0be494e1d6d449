package remote

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber tolerates the itinerary service sending numeric fields as JSON
// numbers, quoted strings, or null. A value that fails to parse is treated as
// unset rather than an error, matching how the service's legacy rows behave.
type FlexNumber struct {
	Value float64
	Set   bool
}

// Num builds a set FlexNumber.
func Num(v float64) FlexNumber {
	return FlexNumber{Value: v, Set: true}
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	n.Value = 0
	n.Set = false

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	s := string(trimmed)
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n.Value = v
	n.Set = true
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// ScenicSpot is the attraction sub-object attached to scenic item records.
// The ticket price lives here, not on the item itself.
type ScenicSpot struct {
	ID          int64      `json:"id,omitempty"`
	Name        string     `json:"name,omitempty"`
	TicketPrice FlexNumber `json:"ticketPrice,omitempty"`
	Rating      FlexNumber `json:"rating,omitempty"`
	Address     string     `json:"address,omitempty"`
	Image       string     `json:"image,omitempty"`
}

// Hotel is the lodging sub-object attached to hotel item records.
type Hotel struct {
	ID      int64      `json:"id,omitempty"`
	Name    string     `json:"name,omitempty"`
	Price   FlexNumber `json:"price,omitempty"`
	Rating  FlexNumber `json:"rating,omitempty"`
	Address string     `json:"address,omitempty"`
	Image   string     `json:"image,omitempty"`
}

// Transport is the transport sub-object attached to transport item records.
type Transport struct {
	ID    int64      `json:"id,omitempty"`
	Name  string     `json:"name,omitempty"`
	Price FlexNumber `json:"price,omitempty"`
	Type  string     `json:"type,omitempty"`
}

// ItemRecord is one persisted itinerary entry in the service schema. An id of
// 0 means "create new"; order is 1-based within the day.
type ItemRecord struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"itemId"`
	ItemType  string `json:"itemType"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Location  string `json:"location,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Order     int    `json:"order"`

	// Price is the top-level fallback; the authoritative price usually sits
	// inside the kind-specific sub-object below.
	Price      *FlexNumber `json:"price,omitempty"`
	ScenicSpot *ScenicSpot `json:"scenicSpot,omitempty"`
	Hotel      *Hotel      `json:"hotel,omitempty"`
	Transport  *Transport  `json:"transport,omitempty"`
}

// DayRecord groups item records under a 1-based day number.
type DayRecord struct {
	DayNumber int          `json:"dayNumber"`
	Items     []ItemRecord `json:"items"`
}

// Itinerary is the persisted itinerary shape. Dates are nullable; the service
// rejects empty strings but accepts null or field omission.
type Itinerary struct {
	ID              int64       `json:"id,omitempty"`
	Title           string      `json:"title"`
	StartDate       *string     `json:"startDate"`
	EndDate         *string     `json:"endDate"`
	EstimatedBudget *FlexNumber `json:"estimatedBudget,omitempty"`
	Description     string      `json:"description,omitempty"`
	City            string      `json:"city,omitempty"`
	IsPublic        bool        `json:"isPublic"`
	Status          string      `json:"status"`
	Cover           string      `json:"cover,omitempty"`
	DaysList        []DayRecord `json:"daysList"`
}
