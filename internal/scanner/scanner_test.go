package scanner

import (
	"path/filepath"
	"testing"

	"github.com/smy-101/skillstudio/internal/metadata"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reposDir = "/data/repos"

func writeFile(t *testing.T, fsys afero.Fs, path string, content []byte) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, content, 0o644))
}

func TestScan(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := filepath.Join(reposDir, "anthropics", "skills")

	pdf := "---\nname: PDF Processing\ndescription: Work with PDFs\n---\n# PDF\n"
	writeFile(t, fsys, filepath.Join(root, "skills", "pdf-processing", "SKILL.md"), []byte(pdf))
	writeFile(t, fsys, filepath.Join(root, "skills", "broken", "skill.md"), []byte("no header here"))
	writeFile(t, fsys, filepath.Join(root, "skills", "binary", "SKILL.md"), []byte{0xff, 0xfe, 0xfd})
	writeFile(t, fsys, filepath.Join(root, "skills", "no-doc", "README.md"), []byte("# nothing"))
	writeFile(t, fsys, filepath.Join(root, "README.md"), []byte("# repo"))

	s := NewScanner(fsys, reposDir)
	skills := s.Scan(types.RepoSource{Owner: "anthropics", Repo: "skills"}, []string{"broken"})

	require.Len(t, skills, 3)

	// sorted by folder
	assert.Equal(t, "binary", skills[0].Path)
	assert.Equal(t, "broken", skills[1].Path)
	assert.Equal(t, "pdf-processing", skills[2].Path)

	unreadable := skills[0]
	assert.Equal(t, "binary", unreadable.Name, "unreadable document falls back to folder name")
	assert.Empty(t, unreadable.Description)
	assert.Nil(t, unreadable.Content)

	malformed := skills[1]
	assert.Equal(t, metadata.UnknownName, malformed.Name, "readable but malformed keeps Unknown")
	assert.True(t, malformed.IsInstalled, "folder name matches installed listing")
	require.NotNil(t, malformed.Content)
	assert.Equal(t, "no header here", *malformed.Content)

	got := skills[2]
	assert.Equal(t, "anthropics/skills/pdf-processing", got.ID)
	assert.Equal(t, "PDF Processing", got.Name)
	assert.Equal(t, "Work with PDFs", got.Description)
	assert.Equal(t, "anthropics", got.Owner)
	assert.Equal(t, "skills", got.Repo)
	assert.Equal(t, "skills", got.SkillsPath)
	assert.True(t, got.IsFetched)
	assert.False(t, got.IsInstalled)
	require.NotNil(t, got.Content)
	assert.Equal(t, pdf, *got.Content)
}

func TestScanMissingRepository(t *testing.T) {
	s := NewScanner(afero.NewMemMapFs(), reposDir)
	skills := s.Scan(types.RepoSource{Owner: "nobody", Repo: "nothing"}, nil)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestScanRootLevelSkills(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := filepath.Join(reposDir, "avdlee", "swiftui-agent-skill")
	writeFile(t, fsys, filepath.Join(root, "swiftui", "SKILL.md"), []byte("---\nname: swiftui-expert\n---\n"))

	skills := NewScanner(fsys, reposDir).Scan(types.RepoSource{Owner: "avdlee", Repo: "swiftui-agent-skill"}, []string{"swiftui-expert"})

	require.Len(t, skills, 1)
	assert.Equal(t, ".", skills[0].SkillsPath)
	assert.Equal(t, "avdlee/swiftui-agent-skill/swiftui", skills[0].ID)
	assert.True(t, skills[0].IsInstalled, "parsed name matches installed listing")
}

func TestScanIDsUnique(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := filepath.Join(reposDir, "o", "r")
	for _, folder := range []string{"a", "b", "c"} {
		writeFile(t, fsys, filepath.Join(root, "skills", folder, "SKILL.md"), []byte("---\nname: same\n---\n"))
	}

	skills := NewScanner(fsys, reposDir).Scan(types.RepoSource{Owner: "o", Repo: "r"}, nil)
	seen := map[string]bool{}
	for _, s := range skills {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestIsInstalled(t *testing.T) {
	installed := []string{"pdf", "Docx Helper"}
	assert.True(t, IsInstalled(installed, "PDF Processing", "pdf"))
	assert.True(t, IsInstalled(installed, "Docx Helper", "docx"))
	assert.False(t, IsInstalled(installed, "xlsx", "xlsx"))
	assert.False(t, IsInstalled(nil, "pdf", "pdf"))
}
