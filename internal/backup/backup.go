package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"wayfare/internal/constants"
	"wayfare/internal/models"
)

// Store holds recovery snapshots of itinerary state, written whenever a push
// to the itinerary service fails. Entries are append-only by key (epoch
// milliseconds), so concurrent writers cannot corrupt a single entry, and
// they are never replayed automatically; restoring is always a user action.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Info describes one recovery snapshot.
type Info struct {
	Key       string
	Timestamp time.Time
	Size      int64
}

// NewStore creates a backup store rooted at dir.
func NewStore(dir string) *Store {
	basePath := filepath.Join(dir, "backups")
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}
}

// Dir returns the backup directory path.
func (s *Store) Dir() string {
	return s.basePath
}

// Write serializes the full itinerary state into a fresh timestamped slot
// and returns the key. Keys are itinerary_backup_<epoch-millis>, bumped by a
// millisecond if the slot is somehow taken.
func (s *Store) Write(state models.ItineraryState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to serialize itinerary for backup: %w", err)
	}

	millis := time.Now().UnixMilli()
	key := backupKey(millis)
	for attempt := 0; s.d.Has(key); attempt++ {
		if attempt > 100 {
			return "", fmt.Errorf("failed to find a free backup slot near %d", millis)
		}
		millis++
		key = backupKey(millis)
	}

	if err := s.d.Write(key, data); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", key, err)
	}
	return key, nil
}

// Read loads one snapshot by key.
func (s *Store) Read(key string) (models.ItineraryState, error) {
	data, err := s.d.Read(key)
	if err != nil {
		return models.ItineraryState{}, fmt.Errorf("failed to read backup %s: %w", key, err)
	}
	var state models.ItineraryState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.ItineraryState{}, fmt.Errorf("failed to parse backup %s: %w", key, err)
	}
	return state, nil
}

// List returns all snapshots, newest first. Files that do not match the key
// format are skipped.
func (s *Store) List() ([]Info, error) {
	if _, err := os.Stat(s.basePath); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupKeyPrefix) {
			continue
		}
		millis, err := strconv.ParseInt(strings.TrimPrefix(name, constants.BackupKeyPrefix), 10, 64)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Key:       name,
			Timestamp: time.UnixMilli(millis),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func backupKey(millis int64) string {
	return constants.BackupKeyPrefix + strconv.FormatInt(millis, 10)
}
