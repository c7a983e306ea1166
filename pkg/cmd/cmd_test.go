package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/config"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/stretchr/testify/require"
)

// fakeCloner writes a fixed file tree per "owner/repo".
type fakeCloner struct {
	repos map[string]map[string]string
}

func (c *fakeCloner) Clone(ctx context.Context, url, dest string) error {
	key := strings.TrimSuffix(strings.TrimPrefix(url, fetch.DefaultGitBaseURL+"/"), ".git")
	files, ok := c.repos[key]
	if !ok {
		return skillerr.Process("failed to clone "+url+": repository not found", nil)
	}
	for rel, content := range files {
		path := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	stdout string
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return []byte(r.stdout), nil, nil
}

func (r *fakeRunner) Start(ctx context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil
}

const testCatalog = `{"version":"1","lastUpdated":"2025-01-01","repos":[{"url":"anthropics/skills","highlight":true},{"url":"other/repo"}]}`

type testEnv struct {
	app    *app.App
	cfg    *config.Config
	runner *fakeRunner
}

// setupApp points loadApp at an application rooted in a temp directory and
// resets the global flags the commands read.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		DataDir:      filepath.Join(root, "data"),
		ConfigDir:    filepath.Join(root, "config"),
		InstalledDir: filepath.Join(root, "installed"),
		CatalogPath:  filepath.Join(root, "library", "catalog.json"),
		GitBaseURL:   fetch.DefaultGitBaseURL,
		LogLevel:     "error",
		LogFormat:    "text",
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.CatalogPath), 0o755))
	require.NoError(t, os.WriteFile(cfg.CatalogPath, []byte(testCatalog), 0o644))

	cloner := &fakeCloner{repos: map[string]map[string]string{
		"anthropics/skills": {
			"skills/pdf-processing/SKILL.md": "---\nname: PDF Processing\ndescription: Extract text from PDFs\n---\n# PDF\n",
			"skills/xlsx/SKILL.md":           "---\nname: xlsx\ndescription: Spreadsheets\n---\n",
			"README.md":                      "# Anthropic skills\n",
		},
		"me/tools": {
			"lint/skill.md": "---\nname: Linter\n---\n",
		},
	}}
	runner := &fakeRunner{stdout: "installed via npx\n"}

	a, err := app.New(cfg, app.Options{Cloner: cloner, Runner: runner, LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)

	origLoad := loadApp
	origOutput := outputFlag
	loadApp = func() (*app.App, error) { return a, nil }
	outputFlag = "table"
	t.Cleanup(func() {
		loadApp = origLoad
		outputFlag = origOutput
	})

	return &testEnv{app: a, cfg: cfg, runner: runner}
}

func (e *testEnv) fetch(t *testing.T, ref string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, executeFetch(context.Background(), &buf, e.app, ref))
}

func (e *testEnv) add(t *testing.T, ref string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, executeAdd(context.Background(), &buf, e.app, ref))
}
