package registry

import (
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// CustomStore persists custom-repos.json.
type CustomStore struct {
	fs     afero.Fs
	path   string
	logger logging.Logger
}

func NewCustomStore(fsys afero.Fs, path string) *CustomStore {
	return &CustomStore{fs: fsys, path: path, logger: logging.NoOpLogger{}}
}

func (s *CustomStore) SetLogger(logger logging.Logger) {
	s.logger = logger
}

func (s *CustomStore) Load() types.CustomRepos {
	custom := types.CustomRepos{}
	if _, err := loadJSON(s.fs, s.path, &custom); err != nil {
		s.logger.Debug("Ignoring custom repos record", "path", s.path, "error", err)
		custom = types.CustomRepos{}
	}
	if custom.Repos == nil {
		custom.Repos = []types.CustomRepo{}
	}
	return custom
}

func (s *CustomStore) Save(custom types.CustomRepos) error {
	if custom.Repos == nil {
		custom.Repos = []types.CustomRepo{}
	}
	return saveJSON(s.fs, s.path, custom)
}

// Add appends repo unless an entry with the same owner and repo exists.
// added reports whether the list changed.
func (s *CustomStore) Add(repo types.CustomRepo) (added bool, err error) {
	defer lockPath(s.path)()

	custom := s.Load()
	for _, r := range custom.Repos {
		if r.Owner == repo.Owner && r.Repo == repo.Repo {
			return false, nil
		}
	}

	custom.Repos = append(custom.Repos, repo)
	if err := s.Save(custom); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the entry for owner/repo. removed is false when no such
// entry existed.
func (s *CustomStore) Remove(owner, repo string) (removed bool, err error) {
	defer lockPath(s.path)()

	custom := s.Load()
	kept := make([]types.CustomRepo, 0, len(custom.Repos))
	for _, r := range custom.Repos {
		if r.Owner == owner && r.Repo == repo {
			removed = true
			continue
		}
		kept = append(kept, r)
	}

	if !removed {
		return false, nil
	}

	custom.Repos = kept
	if err := s.Save(custom); err != nil {
		return false, err
	}
	return true, nil
}
