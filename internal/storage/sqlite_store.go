package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"wayfare/internal/models"
)

// SQLiteStore keeps drafts in a SQLite database. Scalar columns exist for
// listing without decoding every draft; the payload column holds the full
// serialized state and is authoritative.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(configPath string) *SQLiteStore {
	return &SQLiteStore{
		path: configPath,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS itineraries (
	draft_key   TEXT PRIMARY KEY,
	remote_id   INTEGER NOT NULL DEFAULT 0,
	title       TEXT NOT NULL,
	destination TEXT NOT NULL DEFAULT '',
	start_date  TEXT NOT NULL DEFAULT '',
	end_date    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'draft',
	updated_at  TEXT NOT NULL,
	payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_itineraries_updated_at ON itineraries(updated_at);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'wayfare init' first")
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) SaveItinerary(state models.ItineraryState) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if state.DraftKey == "" {
		return fmt.Errorf("itinerary has no draft key")
	}

	state.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize itinerary: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO itineraries (draft_key, remote_id, title, destination, start_date, end_date, status, updated_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(draft_key) DO UPDATE SET
			remote_id = excluded.remote_id,
			title = excluded.title,
			destination = excluded.destination,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			updated_at = excluded.updated_at,
			payload = excluded.payload`,
		state.DraftKey, state.RemoteID, state.Title, state.Destination,
		state.StartDate, state.EndDate, string(state.Status), state.UpdatedAt, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save itinerary: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetItinerary(draftKey string) (models.ItineraryState, error) {
	if s.db == nil {
		return models.ItineraryState{}, fmt.Errorf("storage not loaded")
	}

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM itineraries WHERE draft_key = ?`, draftKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.ItineraryState{}, fmt.Errorf("itinerary not found: %s", draftKey)
	}
	if err != nil {
		return models.ItineraryState{}, fmt.Errorf("failed to load itinerary: %w", err)
	}

	var state models.ItineraryState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return models.ItineraryState{}, fmt.Errorf("failed to parse itinerary %s: %w", draftKey, err)
	}
	return state, nil
}

func (s *SQLiteStore) ListItineraries() ([]models.ItineraryState, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT payload FROM itineraries ORDER BY updated_at DESC, draft_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var list []models.ItineraryState
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		var state models.ItineraryState
		if err := json.Unmarshal([]byte(payload), &state); err != nil {
			return nil, fmt.Errorf("failed to parse itinerary row: %w", err)
		}
		list = append(list, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itineraries: %w", err)
	}
	return list, nil
}

func (s *SQLiteStore) DeleteItinerary(draftKey string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec(`DELETE FROM itineraries WHERE draft_key = ?`, draftKey)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("itinerary not found: %s", draftKey)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
