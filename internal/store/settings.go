package store

import "github.com/dukerupert/seedstudio/internal/model"

type SettingsStore struct {
	slots Slots
}

func NewSettingsStore(s Slots) *SettingsStore {
	return &SettingsStore{slots: s}
}

// Theme returns the stored theme, or system when unset or invalid.
func (s *SettingsStore) Theme() model.Theme {
	t := Load(s.slots, KeyTheme, model.ThemeSystem)
	if !t.Valid() {
		return model.ThemeSystem
	}
	return t
}

func (s *SettingsStore) SetTheme(t model.Theme) error {
	return s.slots.Set(KeyTheme, t)
}

// SchemaVersion returns the stored data version and whether one was stored.
func (s *SettingsStore) SchemaVersion() (int, bool) {
	var v int
	found, err := s.slots.Get(KeySchemaVersion, &v)
	if err != nil {
		s.slots.warn(KeySchemaVersion, err)
		return 0, false
	}
	return v, found
}

func (s *SettingsStore) SetSchemaVersion(v int) error {
	return s.slots.Set(KeySchemaVersion, v)
}
