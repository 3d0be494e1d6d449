package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"wayfare/internal/models"
)

type store struct {
	Version     int                              `json:"version"`
	Itineraries map[string]models.ItineraryState `json:"itineraries"`
}

// JSONStore keeps all drafts in a single JSON file. Suited to small personal
// collections; save rewrites the whole file.
type JSONStore struct {
	path  string
	store *store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &store{
		Version:     1,
		Itineraries: make(map[string]models.ItineraryState),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'wayfare init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Itineraries == nil {
		s.store.Itineraries = make(map[string]models.ItineraryState)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) SaveItinerary(state models.ItineraryState) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if state.DraftKey == "" {
		return fmt.Errorf("itinerary has no draft key")
	}

	state.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.store.Itineraries[state.DraftKey] = state
	return s.save()
}

func (s *JSONStore) GetItinerary(draftKey string) (models.ItineraryState, error) {
	if s.store == nil {
		return models.ItineraryState{}, fmt.Errorf("storage not loaded")
	}

	state, ok := s.store.Itineraries[draftKey]
	if !ok {
		return models.ItineraryState{}, fmt.Errorf("itinerary not found: %s", draftKey)
	}
	return state, nil
}

func (s *JSONStore) ListItineraries() ([]models.ItineraryState, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	list := make([]models.ItineraryState, 0, len(s.store.Itineraries))
	for _, state := range s.store.Itineraries {
		list = append(list, state)
	}

	// Most recently updated first, so "latest draft" selection is stable.
	sort.Slice(list, func(i, j int) bool {
		if list[i].UpdatedAt != list[j].UpdatedAt {
			return list[i].UpdatedAt > list[j].UpdatedAt
		}
		return list[i].DraftKey < list[j].DraftKey
	})
	return list, nil
}

func (s *JSONStore) DeleteItinerary(draftKey string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Itineraries[draftKey]; !ok {
		return fmt.Errorf("itinerary not found: %s", draftKey)
	}
	delete(s.store.Itineraries, draftKey)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
