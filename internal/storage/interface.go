package storage

import "wayfare/internal/models"

// Provider is the local draft store contract. Drafts are keyed by the
// itinerary's DraftKey so a trip survives process restarts even before it
// has ever been pushed to the itinerary service.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Drafts
	SaveItinerary(models.ItineraryState) error
	GetItinerary(draftKey string) (models.ItineraryState, error)
	ListItineraries() ([]models.ItineraryState, error)
	DeleteItinerary(draftKey string) error

	// Utils
	GetConfigPath() string
}
