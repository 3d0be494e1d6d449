package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"wayfare/internal/constants"
)

// Snapshot is the per-session preference state consumed by the engine as
// defaults for a fresh itinerary. The engine never writes preferences; only
// the CLI records them after user actions.
type Snapshot struct {
	RecentDestinations []string
	DefaultTripLength  int
}

const prefsFile = "prefs"

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(prefsFile) // .yaml is implicit
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("WAYFARE")
	v.AutomaticEnv()
	v.SetDefault("default_trip_length", constants.DefaultTripLength)
	v.SetDefault("recent_destinations", []string{})
	return v
}

// Load reads the preference file under configDir, falling back to defaults
// when none exists yet.
func Load(configDir string) Snapshot {
	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Unreadable prefs are not fatal; defaults still apply.
			fmt.Fprintf(os.Stderr, "warning: failed to read preferences: %v\n", err)
		}
	}

	snap := Snapshot{
		RecentDestinations: v.GetStringSlice("recent_destinations"),
		DefaultTripLength:  v.GetInt("default_trip_length"),
	}
	if snap.DefaultTripLength < 1 {
		snap.DefaultTripLength = constants.DefaultTripLength
	}
	return snap
}

// RecordDestination prepends a destination to the recent list, dedupes it,
// and persists the file. Called by the CLI after a trip is created.
func RecordDestination(configDir, destination string) error {
	if destination == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	snap := Load(configDir)
	recent := []string{destination}
	for _, d := range snap.RecentDestinations {
		if d == destination {
			continue
		}
		recent = append(recent, d)
		if len(recent) >= constants.MaxRecentDestinations {
			break
		}
	}

	v := newViper(configDir)
	v.Set("recent_destinations", recent)
	v.Set("default_trip_length", snap.DefaultTripLength)

	path := filepath.Join(configDir, prefsFile+".yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// SetDefaultTripLength persists the default day count for new trips.
func SetDefaultTripLength(configDir string, days int) error {
	if days < 1 {
		return fmt.Errorf("trip length must be at least 1 day")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	snap := Load(configDir)
	v := newViper(configDir)
	v.Set("recent_destinations", snap.RecentDestinations)
	v.Set("default_trip_length", days)

	path := filepath.Join(configDir, prefsFile+".yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
