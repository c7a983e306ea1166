package registry

import (
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// FetchedStore persists fetched-repos.json.
type FetchedStore struct {
	fs     afero.Fs
	path   string
	logger logging.Logger
}

func NewFetchedStore(fsys afero.Fs, path string) *FetchedStore {
	return &FetchedStore{fs: fsys, path: path, logger: logging.NoOpLogger{}}
}

func (s *FetchedStore) SetLogger(logger logging.Logger) {
	s.logger = logger
}

// Load never fails: a missing or unreadable file is an empty record.
func (s *FetchedStore) Load() types.FetchedRepos {
	repos, err := s.LoadChecked()
	if err != nil {
		s.logger.Debug("Ignoring fetched repos record", "path", s.path, "error", err)
		return types.FetchedRepos{Repos: map[string]string{}}
	}
	return repos
}

// LoadChecked is Load for callers that delete data based on the record: a
// file that exists but cannot be read or parsed is an error, not empty.
func (s *FetchedStore) LoadChecked() (types.FetchedRepos, error) {
	repos := types.FetchedRepos{}
	found, err := loadJSON(s.fs, s.path, &repos)
	if err != nil {
		if found {
			return types.FetchedRepos{}, skillerr.Parse("failed to parse fetched repositories", err)
		}
		return types.FetchedRepos{}, skillerr.IO("failed to read fetched repositories", err)
	}
	if repos.Repos == nil {
		repos.Repos = map[string]string{}
	}
	return repos, nil
}

func (s *FetchedStore) Save(repos types.FetchedRepos) error {
	if repos.Repos == nil {
		repos.Repos = map[string]string{}
	}
	return saveJSON(s.fs, s.path, repos)
}

// IsFetched reports whether key has a recorded fetch.
func (s *FetchedStore) IsFetched(key string) bool {
	_, ok := s.Load().Repos[key]
	return ok
}

// Record sets or overwrites the timestamp for key.
func (s *FetchedStore) Record(key, timestamp string) error {
	defer lockPath(s.path)()

	repos := s.Load()
	repos.Repos[key] = timestamp
	return s.Save(repos)
}

// Remove drops key; removing an absent key is not an error.
func (s *FetchedStore) Remove(key string) error {
	defer lockPath(s.path)()

	repos := s.Load()
	if _, ok := repos.Repos[key]; !ok {
		return nil
	}
	delete(repos.Repos, key)
	return s.Save(repos)
}
