// Package scanner builds skill records from a repository's local working
// copy.
package scanner

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/smy-101/skillstudio/internal/detector"
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/metadata"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// Scanner walks working copies stored under reposDir/<owner>/<repo>.
type Scanner struct {
	fs       afero.Fs
	reposDir string
	logger   logging.Logger
}

// NewScanner creates a Scanner rooted at reposDir.
func NewScanner(fsys afero.Fs, reposDir string) *Scanner {
	return &Scanner{
		fs:       fsys,
		reposDir: reposDir,
		logger:   logging.NoOpLogger{},
	}
}

func (s *Scanner) SetLogger(logger logging.Logger) {
	s.logger = logger
}

// ReposDir returns the directory holding all working copies.
func (s *Scanner) ReposDir() string {
	return s.reposDir
}

// RepoDir returns the local working copy path of a repository.
func (s *Scanner) RepoDir(owner, repo string) string {
	return filepath.Join(s.reposDir, owner, repo)
}

// Scan returns one skill per scan-root subdirectory holding a skill
// document, ordered by folder name. A repository without a working copy
// yields an empty list.
func (s *Scanner) Scan(source types.RepoSource, installed []string) []types.Skill {
	skills := []types.Skill{}

	repoDir := s.RepoDir(source.Owner, source.Repo)
	if ok, _ := afero.DirExists(s.fs, repoDir); !ok {
		return skills
	}

	skillsPath := detector.DetectSkillsPath(s.fs, repoDir)
	scanRoot := detector.ScanRoot(repoDir, skillsPath)

	for _, folder := range detector.SkillDirs(s.fs, scanRoot) {
		skillFile, _ := detector.SkillFile(s.fs, filepath.Join(scanRoot, folder))
		skills = append(skills, s.buildSkill(source, skillsPath, folder, skillFile, installed))
	}

	s.logger.Debug("Scanned repository", "repo", source.Key(), "skills_path", skillsPath, "skills", len(skills))
	return skills
}

func (s *Scanner) buildSkill(source types.RepoSource, skillsPath, folder, skillFile string, installed []string) types.Skill {
	var content *string
	name, description := folder, ""

	data, err := afero.ReadFile(s.fs, skillFile)
	switch {
	case err != nil:
		s.logger.Debug("Skill document unreadable", "path", skillFile, "error", err)
	case !utf8.Valid(data):
		s.logger.Debug("Skill document is not valid UTF-8", "path", skillFile)
	default:
		text := string(data)
		content = &text
		name, description = metadata.Parse(text)
	}

	return types.Skill{
		ID:          SkillID(source.Owner, source.Repo, folder),
		Name:        name,
		Description: description,
		Owner:       source.Owner,
		Repo:        source.Repo,
		SkillsPath:  skillsPath,
		Path:        folder,
		Content:     content,
		IsInstalled: IsInstalled(installed, name, folder),
		IsFetched:   true,
	}
}

// SkillID 生成技能 ID: owner/repo/folder
func SkillID(owner, repo, folder string) string {
	return types.RepoKey(owner, repo) + "/" + folder
}

// IsInstalled reports whether the installed listing holds either the
// skill's name or its folder.
func IsInstalled(installed []string, name, folder string) bool {
	for _, entry := range installed {
		if entry == name || entry == folder {
			return true
		}
	}
	return false
}
