// Package detector works out where a fetched repository keeps its skills.
package detector

import (
	"path/filepath"

	"github.com/smy-101/skillstudio/internal/constants"
	"github.com/spf13/afero"
)

// DetectSkillsPath 返回最可能包含技能目录的相对路径
//
// Candidates are checked in order (skills, src/skills, lib/skills, .); a
// later candidate only wins with a strictly higher number of skill folders.
// A missing root, or one without any skill folder, yields ".".
func DetectSkillsPath(fsys afero.Fs, repoRoot string) string {
	best := constants.RootSkillsPath
	bestCount := 0

	for _, candidate := range constants.SkillsPathCandidates {
		dir := ScanRoot(repoRoot, candidate)
		if ok, _ := afero.DirExists(fsys, dir); !ok {
			continue
		}

		if count := CountSkillDirs(fsys, dir); count > bestCount {
			best = candidate
			bestCount = count
		}
	}

	return best
}

// ScanRoot joins a repository root with a detected skills path.
func ScanRoot(repoRoot, skillsPath string) string {
	if skillsPath == constants.RootSkillsPath || skillsPath == "" {
		return repoRoot
	}
	return filepath.Join(repoRoot, filepath.FromSlash(skillsPath))
}

// CountSkillDirs counts the immediate subdirectories of dir holding a
// skill document.
func CountSkillDirs(fsys afero.Fs, dir string) int {
	return len(SkillDirs(fsys, dir))
}

// SkillDirs lists the immediate subdirectories of dir that hold a skill
// document, in directory-name order. Entries are stat'ed so symlinked
// folders count as directories.
func SkillDirs(fsys afero.Fs, dir string) []string {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())
		info, err := fsys.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, ok := SkillFile(fsys, entryPath); ok {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}

// SkillFile returns the skill document inside dir, preferring SKILL.md
// over skill.md.
func SkillFile(fsys afero.Fs, dir string) (string, bool) {
	for _, name := range []string{constants.SkillFileName, constants.SkillFileNameLower} {
		p := filepath.Join(dir, name)
		if ok, _ := afero.Exists(fsys, p); ok {
			return p, true
		}
	}
	return "", false
}
