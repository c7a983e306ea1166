package fetch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitClonerFailure(t *testing.T) {
	tests := []struct {
		name   string
		binary string
	}{
		{name: "missing binary", binary: "skillstudio-no-such-git"},
		{name: "nonzero exit", binary: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloner := &GitCloner{Binary: tt.binary}
			err := cloner.Clone(context.Background(), "https://github.com/a/b.git", filepath.Join(t.TempDir(), "b"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, skillerr.ErrProcessFailure))
			assert.Contains(t, err.Error(), "https://github.com/a/b.git")
		})
	}
}

func TestRepoURL(t *testing.T) {
	f := NewFetcher(nil, Options{}, nil, nil, nil, nil)
	assert.Equal(t, "https://github.com/anthropics/skills.git", f.RepoURL("anthropics", "skills"))

	f = NewFetcher(nil, Options{GitBaseURL: "https://mirror.example/"}, nil, nil, nil, nil)
	assert.Equal(t, "https://mirror.example/anthropics/skills.git", f.RepoURL("anthropics", "skills"))
}
