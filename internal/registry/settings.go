package registry

import (
	"fmt"

	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// SettingsStore persists settings.json. Unlike the other stores its errors
// are surfaced: a settings file that exists but cannot be read has no safe
// default.
type SettingsStore struct {
	fs   afero.Fs
	path string
}

func NewSettingsStore(fsys afero.Fs, path string) *SettingsStore {
	return &SettingsStore{fs: fsys, path: path}
}

func (s *SettingsStore) Path() string {
	return s.path
}

// Load returns the default settings when no file exists yet.
func (s *SettingsStore) Load() (types.Settings, error) {
	settings := types.DefaultSettings()

	found, err := loadJSON(s.fs, s.path, &settings)
	if err != nil {
		if found {
			return types.Settings{}, skillerr.Parse("failed to parse settings", err)
		}
		return types.Settings{}, skillerr.IO("failed to read settings", err)
	}
	if settings.InstallMethod == "" {
		settings.InstallMethod = types.InstallMethodCopy
	}
	return settings, nil
}

func (s *SettingsStore) Save(settings types.Settings) error {
	if !settings.InstallMethod.Valid() {
		return skillerr.Parse(fmt.Sprintf("unknown install method %q (expected copy or npx)", settings.InstallMethod), nil)
	}

	defer lockPath(s.path)()
	if err := saveJSON(s.fs, s.path, settings); err != nil {
		return skillerr.IO("failed to write settings", err)
	}
	return nil
}
