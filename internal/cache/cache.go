// Package cache keeps a per-repository side file with the scanned skill
// list, stored next to the repository's working copy.
package cache

import (
	"encoding/json"
	"path/filepath"

	"github.com/smy-101/skillstudio/internal/constants"
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// Store reads and writes <reposDir>/<owner>/<repo>/_skills_cache.json.
type Store struct {
	fs       afero.Fs
	reposDir string
	logger   logging.Logger
}

func NewStore(fsys afero.Fs, reposDir string) *Store {
	return &Store{
		fs:       fsys,
		reposDir: reposDir,
		logger:   logging.NoOpLogger{},
	}
}

func (s *Store) SetLogger(logger logging.Logger) {
	s.logger = logger
}

// Path returns the cache file location for a repository.
func (s *Store) Path(owner, repo string) string {
	return filepath.Join(s.reposDir, owner, repo, constants.SkillsCacheFile)
}

// Write overwrites the cache unconditionally. The repository's working copy
// must already exist.
func (s *Store) Write(owner, repo string, skills []types.Skill) error {
	if skills == nil {
		skills = []types.Skill{}
	}

	data, err := json.MarshalIndent(skills, "", "  ")
	if err != nil {
		return skillerr.IO("failed to marshal skills cache", err)
	}

	path := s.Path(owner, repo)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return skillerr.IO("failed to write skills cache", err)
	}

	s.logger.Debug("Wrote skills cache", "path", path, "skills", len(skills))
	return nil
}

// Read returns the cached list. ok is false when the file is missing or
// cannot be parsed; callers then fall back to a live scan.
func (s *Store) Read(owner, repo string) (skills []types.Skill, ok bool) {
	path := s.Path(owner, repo)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, false
	}

	if err := json.Unmarshal(data, &skills); err != nil {
		s.logger.Debug("Ignoring unreadable skills cache", "path", path, "error", err)
		return nil, false
	}
	if skills == nil {
		skills = []types.Skill{}
	}
	return skills, true
}
