package store

import (
	"path/filepath"
	"sync"

	"imkit/internal/domain"
)

const settingsFile = "settings.json"

// SettingsFileStore persists host preferences to disk.
type SettingsFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSettingsFileStore returns a SettingsFileStore rooted at dir.
func NewSettingsFileStore(dir string) *SettingsFileStore {
	return &SettingsFileStore{dir: dir}
}

// SaveSettings replaces the stored settings.
func (s *SettingsFileStore) SaveSettings(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.dir, settingsFile), settings, 0o600)
}

// LoadSettings returns the stored settings, or the defaults when nothing has
// been saved. Keys missing from the file keep their default values.
func (s *SettingsFileStore) LoadSettings() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()
	if err := readJSON(filepath.Join(s.dir, settingsFile), &settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// UpdateSettings loads, mutates and saves the settings under one lock.
func (s *SettingsFileStore) UpdateSettings(fn func(*domain.Settings)) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, settingsFile)
	settings := domain.DefaultSettings()
	if err := readJSON(path, &settings); err != nil {
		return domain.Settings{}, err
	}
	fn(&settings)
	if err := writeJSON(path, settings, 0o600); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Compile-time assertion that SettingsFileStore implements domain.SettingsStore.
var _ domain.SettingsStore = (*SettingsFileStore)(nil)
