package constants

import "time"

const (
	// DateFormat is the canonical calendar date layout (ISO 8601 date).
	DateFormat = "2006-01-02"
	// TimeFormat is the layout for schedule times within a day.
	TimeFormat = "15:04"
)

const (
	// AutosaveDebounce is the trailing-edge quiet period after the last
	// mutation before an autosave is pushed to the itinerary service.
	AutosaveDebounce = 2 * time.Second

	// DefaultTripLength is the day count used for a fresh itinerary when the
	// preference store has no recorded default.
	DefaultTripLength = 3

	// MaxRecentDestinations caps the recently-used destination list kept in
	// the preference store.
	MaxRecentDestinations = 5
)

const (
	// DefaultTitle is used when an itinerary is created or imported with a
	// blank title.
	DefaultTitle = "Untitled trip"

	// DayPlaceholderFormat labels a day that has no concrete calendar date
	// yet (date range cleared or undecided).
	DayPlaceholderFormat = "Day %d"
)

// BackupKeyPrefix prefixes every recovery snapshot key in the local backup
// store. Full keys are BackupKeyPrefix + epoch milliseconds.
const BackupKeyPrefix = "itinerary_backup_"
