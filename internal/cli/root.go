package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"wayfare/internal/backup"
	"wayfare/internal/constants"
	"wayfare/internal/engine"
	"wayfare/internal/logger"
	"wayfare/internal/models"
	"wayfare/internal/prefs"
	"wayfare/internal/remote"
	"wayfare/internal/storage"
	synccontrol "wayfare/internal/sync"
)

// Context carries the shared collaborators into every command.
type Context struct {
	Store     storage.Provider
	Client    remote.Service
	Backups   *backup.Store
	Prefs     prefs.Snapshot
	ConfigDir string
}

// ResolveDraft loads the draft with the given key, or the most recently
// updated draft when the key is empty.
func (c *Context) ResolveDraft(draftKey string) (models.ItineraryState, error) {
	if draftKey != "" {
		return c.Store.GetItinerary(draftKey)
	}

	drafts, err := c.Store.ListItineraries()
	if err != nil {
		return models.ItineraryState{}, err
	}
	if len(drafts) == 0 {
		return models.ItineraryState{}, fmt.Errorf("no itineraries yet, create one with 'wayfare new'")
	}
	return drafts[0], nil
}

// SaveDraft persists the store's current state locally.
func (c *Context) SaveDraft(store *engine.Store) error {
	if err := c.Store.SaveItinerary(store.State()); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Controller builds a sync controller over the store with the standard
// debounce window and the recovery backup store as failure sink.
func (c *Context) Controller(store *engine.Store) (*synccontrol.Controller, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("itinerary service not configured, set WAYFARE_API_URL")
	}
	return synccontrol.NewController(store, c.Client, c.Backups, constants.AutosaveDebounce), nil
}

// AcquireLock guards long-lived editing sessions against a second wayfare
// process on the same storage. Returns a release function.
func (c *Context) AcquireLock() (func(), error) {
	lockPath := filepath.Join(c.ConfigDir, "wayfare.lock")

	if content, err := os.ReadFile(lockPath); err == nil {
		pid, perr := strconv.Atoi(strings.TrimSpace(string(content)))
		if perr == nil {
			if process, ferr := ps.FindProcess(pid); ferr == nil && process != nil &&
				strings.HasPrefix(process.Executable(), "wayfare") {
				return nil, fmt.Errorf("another wayfare session is running (pid %d)", pid)
			}
		}
		// Stale lockfile from a dead process; take it over.
		logger.Debug("Removing stale lockfile", "path", lockPath)
	}

	if err := os.MkdirAll(c.ConfigDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return func() {
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove lockfile", "error", err)
		}
	}, nil
}

// ParseKind maps a CLI kind argument to the item kind.
func ParseKind(s string) (models.ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attraction", "scenic", "sight":
		return models.KindAttraction, nil
	case "lodging", "hotel", "stay":
		return models.KindLodging, nil
	case "transport", "transit":
		return models.KindTransport, nil
	case "custom", "activity":
		return models.KindCustom, nil
	default:
		return "", fmt.Errorf("invalid item kind: %s (want attraction, lodging, transport, or custom)", s)
	}
}
