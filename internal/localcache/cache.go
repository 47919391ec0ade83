// Package localcache persists the toggled-activity ids and the energy
// level to a JSON file, so a restart does not lose the day's plan before
// the backend round-trips complete.
package localcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is the on-disk shape.
type State struct {
	Version     int      `json:"version"`
	ActivityIDs []string `json:"activity_ids"`
	EnergyLevel float64  `json:"energy_level"`
}

// Cache reads and writes one State file.
type Cache struct {
	path string
}

// New creates a Cache at the given path. DefaultPath picks a sensible
// location when the caller has no preference.
func New(path string) *Cache {
	return &Cache{path: path}
}

// DefaultPath resolves to the user config directory, falling back to the
// working directory when it cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".energy-cache.json"
	}
	return filepath.Join(dir, "energy", "cache.json")
}

// Load reads the cached state. A missing file is not an error: it
// returns a zero State with the energy level at 100.
func (c *Cache) Load() (State, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{Version: 1, EnergyLevel: 100}, nil
		}
		return State{}, fmt.Errorf("read cache: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parse cache: %w", err)
	}
	return state, nil
}

// Save writes the state, creating parent directories as needed.
func (c *Cache) Save(state State) error {
	if state.Version == 0 {
		state.Version = 1
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Path returns the file location.
func (c *Cache) Path() string {
	return c.path
}
