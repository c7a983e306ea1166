package registry

import (
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// FavoritesStore persists favorites.json.
type FavoritesStore struct {
	fs     afero.Fs
	path   string
	logger logging.Logger
}

func NewFavoritesStore(fsys afero.Fs, path string) *FavoritesStore {
	return &FavoritesStore{fs: fsys, path: path, logger: logging.NoOpLogger{}}
}

func (s *FavoritesStore) SetLogger(logger logging.Logger) {
	s.logger = logger
}

func (s *FavoritesStore) Load() types.Favorites {
	favorites := types.Favorites{}
	if _, err := loadJSON(s.fs, s.path, &favorites); err != nil {
		s.logger.Debug("Ignoring favorites record", "path", s.path, "error", err)
		favorites = types.Favorites{}
	}
	return normalizeFavorites(favorites)
}

func (s *FavoritesStore) Save(favorites types.Favorites) error {
	return saveJSON(s.fs, s.path, normalizeFavorites(favorites))
}

// ToggleSkill adds or removes a skill id and returns the saved favorites.
func (s *FavoritesStore) ToggleSkill(skillID string) (types.Favorites, error) {
	defer lockPath(s.path)()

	favorites := s.Load()
	favorites.Skills = toggle(favorites.Skills, skillID)
	if err := s.Save(favorites); err != nil {
		return types.Favorites{}, err
	}
	return favorites, nil
}

// ToggleRepo adds or removes an "owner/repo" key and returns the saved
// favorites.
func (s *FavoritesStore) ToggleRepo(repoKey string) (types.Favorites, error) {
	defer lockPath(s.path)()

	favorites := s.Load()
	favorites.Repos = toggle(favorites.Repos, repoKey)
	if err := s.Save(favorites); err != nil {
		return types.Favorites{}, err
	}
	return favorites, nil
}

func toggle(list []string, value string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, v := range list {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func normalizeFavorites(f types.Favorites) types.Favorites {
	if f.Skills == nil {
		f.Skills = []string{}
	}
	if f.Repos == nil {
		f.Repos = []string{}
	}
	return f
}

// Contains reports whether value is in list.
func Contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
