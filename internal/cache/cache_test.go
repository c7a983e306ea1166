package cache

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reposDir = "/data/repos"

func newStoreWithRepo(t *testing.T, owner, repo string) (*Store, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(filepath.Join(reposDir, owner, repo), 0o755))
	return NewStore(fsys, reposDir), fsys
}

func TestWriteThenRead(t *testing.T) {
	store, _ := newStoreWithRepo(t, "anthropics", "skills")

	content := "---\nname: PDF Processing\n---\n"
	want := []types.Skill{
		{
			ID:          "anthropics/skills/pdf",
			Name:        "PDF Processing",
			Description: "PDFs",
			Owner:       "anthropics",
			Repo:        "skills",
			SkillsPath:  "skills",
			Path:        "pdf",
			Content:     &content,
			IsInstalled: true,
			IsFetched:   true,
		},
		{
			ID:         "anthropics/skills/binary",
			Name:       "binary",
			Owner:      "anthropics",
			Repo:       "skills",
			SkillsPath: "skills",
			Path:       "binary",
			IsFetched:  true,
		},
	}

	require.NoError(t, store.Write("anthropics", "skills", want))

	got, ok := store.Read("anthropics", "skills")
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Nil(t, got[1].Content)
}

func TestWriteOverwrites(t *testing.T) {
	store, _ := newStoreWithRepo(t, "o", "r")

	require.NoError(t, store.Write("o", "r", []types.Skill{{ID: "o/r/a"}, {ID: "o/r/b"}}))
	require.NoError(t, store.Write("o", "r", nil))

	got, ok := store.Read("o", "r")
	require.True(t, ok)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestReadMissing(t *testing.T) {
	store, _ := newStoreWithRepo(t, "o", "r")
	got, ok := store.Read("o", "r")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestReadCorrupted(t *testing.T) {
	store, fsys := newStoreWithRepo(t, "o", "r")
	require.NoError(t, afero.WriteFile(fsys, store.Path("o", "r"), []byte("{not json"), 0o644))

	_, ok := store.Read("o", "r")
	assert.False(t, ok)
}

func TestWriteWithoutWorkingCopy(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), reposDir)

	err := store.Write("o", "r", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skillerr.ErrIOFailure))
}

func TestPath(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), reposDir)
	assert.Equal(t, filepath.Join(reposDir, "o", "r", "_skills_cache.json"), store.Path("o", "r"))
}
