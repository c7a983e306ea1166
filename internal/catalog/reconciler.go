// Package catalog merges the built-in catalog, custom repositories and the
// fetched/installed/favorite state into the views the CLI shows.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smy-101/skillstudio/internal/cache"
	"github.com/smy-101/skillstudio/internal/constants"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/smy-101/skillstudio/internal/scanner"
	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// RepoFetcher materializes working copies.
type RepoFetcher interface {
	Fetch(ctx context.Context, owner, repo string) (*fetch.FetchResult, error)
	Ensure(ctx context.Context, owner, repo string) (*fetch.FetchResult, error)
	RemoveWorkingCopy(owner, repo string) error
	StagingDir() string
}

// Stores groups the persisted state the reconciler reads.
type Stores struct {
	Fetched   *registry.FetchedStore
	Custom    *registry.CustomStore
	Favorites *registry.FavoritesStore
}

// Reconciler 目录协调器
type Reconciler struct {
	fs           afero.Fs
	catalogPath  string
	installedDir string

	scanner *scanner.Scanner
	cache   *cache.Store
	stores  Stores
	fetcher RepoFetcher

	logger logging.Logger
}

// NewReconciler creates a Reconciler. It keeps no state between calls;
// every view re-reads the files it is built from.
func NewReconciler(fsys afero.Fs, catalogPath, installedDir string, sc *scanner.Scanner, store *cache.Store, stores Stores, fetcher RepoFetcher) *Reconciler {
	return &Reconciler{
		fs:           fsys,
		catalogPath:  catalogPath,
		installedDir: installedDir,
		scanner:      sc,
		cache:        store,
		stores:       stores,
		fetcher:      fetcher,
		logger:       logging.NoOpLogger{},
	}
}

func (r *Reconciler) SetLogger(logger logging.Logger) {
	r.logger = logger
}

// Catalog reads the built-in catalog.
func (r *Reconciler) Catalog() (*types.Catalog, error) {
	data, err := afero.ReadFile(r.fs, r.catalogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, skillerr.NotFound(fmt.Sprintf("catalog not found at %s", r.catalogPath), err)
		}
		return nil, skillerr.IO("failed to read catalog", err)
	}

	var catalog types.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, skillerr.Parse("failed to parse catalog", err)
	}
	if catalog.Repos == nil {
		catalog.Repos = []types.CatalogRepo{}
	}
	return &catalog, nil
}

// catalogSources splits each catalog url at its first "/". Entries that do
// not name a valid owner and repository are skipped.
func (r *Reconciler) catalogSources() ([]types.RepoSource, map[string]bool) {
	highlights := map[string]bool{}

	catalog, err := r.Catalog()
	if err != nil {
		r.logger.Warn("Catalog unavailable, continuing with custom repositories", "error", err)
		return nil, highlights
	}

	var sources []types.RepoSource
	for _, entry := range catalog.Repos {
		owner, repo, ok := strings.Cut(entry.URL, "/")
		if !ok {
			r.logger.Debug("Skipping malformed catalog entry", "url", entry.URL)
			continue
		}
		source := types.RepoSource{Owner: owner, Repo: repo}
		if err := fetch.ValidateSource(source); err != nil {
			r.logger.Debug("Skipping malformed catalog entry", "url", entry.URL, "error", err)
			continue
		}
		if _, seen := highlights[source.Key()]; seen {
			continue
		}
		highlights[source.Key()] = entry.Highlight
		sources = append(sources, source)
	}
	return sources, highlights
}

// Sources returns catalog repositories followed by custom repositories that
// are not already in the catalog.
func (r *Reconciler) Sources() []types.RepoSource {
	sources, _ := r.catalogSources()
	return r.appendCustom(sources)
}

func (r *Reconciler) appendCustom(sources []types.RepoSource) []types.RepoSource {
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		seen[s.Key()] = true
	}
	for _, custom := range r.stores.Custom.Load().Repos {
		source := types.RepoSource{Owner: custom.Owner, Repo: custom.Repo}
		if seen[source.Key()] {
			continue
		}
		seen[source.Key()] = true
		sources = append(sources, source)
	}
	return sources
}

// Repos returns the merged repository view.
func (r *Reconciler) Repos() []types.RepoInfo {
	catalogSources, highlights := r.catalogSources()
	fetched := r.stores.Fetched.Load().Repos

	repos := make([]types.RepoInfo, 0, len(catalogSources))
	for _, source := range r.appendCustom(catalogSources) {
		_, inCatalog := highlights[source.Key()]
		_, isFetched := fetched[source.Key()]
		repos = append(repos, types.RepoInfo{
			Owner:     source.Owner,
			Repo:      source.Repo,
			IsFetched: isFetched,
			IsCustom:  !inCatalog,
			Highlight: highlights[source.Key()],
		})
	}
	return repos
}

// Skills returns every skill of every fetched repository. Cached lists get
// their installed flag recomputed; a missing cache falls back to a live
// scan, which is written back.
func (r *Reconciler) Skills() []types.Skill {
	installed := r.installedOrEmpty()
	fetched := r.stores.Fetched.Load().Repos

	skills := []types.Skill{}
	for _, source := range r.Sources() {
		if _, ok := fetched[source.Key()]; !ok {
			continue
		}

		if cached, ok := r.cache.Read(source.Owner, source.Repo); ok {
			for i := range cached {
				cached[i].IsInstalled = scanner.IsInstalled(installed, cached[i].Name, cached[i].Path)
			}
			skills = append(skills, cached...)
			continue
		}

		scanned := r.scanner.Scan(source, installed)
		if err := r.cache.Write(source.Owner, source.Repo, scanned); err != nil {
			r.logger.Debug("Failed to write skills cache", "repo", source.Key(), "error", err)
		}
		skills = append(skills, scanned...)
	}
	return skills
}

// FindSkill looks a skill up by id among all fetched skills.
func (r *Reconciler) FindSkill(id string) (*types.Skill, error) {
	for _, skill := range r.Skills() {
		if skill.ID == id {
			s := skill
			return &s, nil
		}
	}
	return nil, skillerr.NotFound(fmt.Sprintf("skill %s not found", id), nil)
}

// FetchedRepos returns the fetched record.
func (r *Reconciler) FetchedRepos() types.FetchedRepos {
	return r.stores.Fetched.Load()
}

// Favorites returns the favorite sets.
func (r *Reconciler) Favorites() types.Favorites {
	return r.stores.Favorites.Load()
}

// InstalledSkills lists the entry names of the installed-skills directory.
func (r *Reconciler) InstalledSkills() ([]string, error) {
	entries, err := afero.ReadDir(r.fs, r.installedDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, skillerr.IO("failed to read installed skills directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (r *Reconciler) installedOrEmpty() []string {
	installed, err := r.InstalledSkills()
	if err != nil {
		r.logger.Debug("Treating installed listing as empty", "error", err)
		return []string{}
	}
	return installed
}

// Readme returns the repository README. ok is false when the repository has
// no working copy or no README.
func (r *Reconciler) Readme(owner, repo string) (content string, ok bool, err error) {
	repoDir := r.scanner.RepoDir(owner, repo)
	if exists, _ := afero.DirExists(r.fs, repoDir); !exists {
		return "", false, nil
	}

	for _, name := range constants.ReadmeNames {
		path := filepath.Join(repoDir, name)
		if exists, _ := afero.Exists(r.fs, path); !exists {
			continue
		}
		data, err := afero.ReadFile(r.fs, path)
		if err != nil {
			return "", false, skillerr.IO("failed to read README", err)
		}
		return string(data), true, nil
	}
	return "", false, nil
}

// Fetch re-fetches one repository. Only catalog and custom repositories can
// be fetched; anything else would be recorded but never listed.
func (r *Reconciler) Fetch(ctx context.Context, owner, repo string) (*fetch.FetchResult, error) {
	key := types.RepoKey(owner, repo)
	known := false
	for _, source := range r.Sources() {
		if source.Key() == key {
			known = true
			break
		}
	}
	if !known {
		return nil, skillerr.NotFound(fmt.Sprintf("%s is not in the catalog or custom repositories; use 'skillstudio add %s'", key, key), nil)
	}
	return r.fetcher.Fetch(ctx, owner, repo)
}

// AddCustomRepo clones the repository when no working copy exists, records
// it as a custom repository with its detected skills path, and refreshes
// its fetched record and cache.
func (r *Reconciler) AddCustomRepo(ctx context.Context, owner, repo string) (*fetch.FetchResult, error) {
	result, err := r.fetcher.Ensure(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	added, err := r.stores.Custom.Add(types.CustomRepo{
		Owner:      owner,
		Repo:       repo,
		SkillsPath: result.SkillsPath,
	})
	if err != nil {
		return nil, skillerr.IO("failed to save custom repositories", err)
	}
	if !added {
		r.logger.Debug("Custom repository already present", "repo", types.RepoKey(owner, repo))
	}
	return result, nil
}

// RemoveCustomRepo drops a custom repository. Its working copy, cache and
// fetched record go too unless the repository is also in the catalog.
func (r *Reconciler) RemoveCustomRepo(owner, repo string) error {
	removed, err := r.stores.Custom.Remove(owner, repo)
	if err != nil {
		return skillerr.IO("failed to save custom repositories", err)
	}
	if !removed {
		return skillerr.NotFound(fmt.Sprintf("%s is not a custom repository", types.RepoKey(owner, repo)), nil)
	}

	_, highlights := r.catalogSources()
	if _, inCatalog := highlights[types.RepoKey(owner, repo)]; inCatalog {
		return nil
	}
	return r.fetcher.RemoveWorkingCopy(owner, repo)
}

// CustomRepos lists the custom repositories.
func (r *Reconciler) CustomRepos() []types.CustomRepo {
	repos := r.stores.Custom.Load().Repos
	if repos == nil {
		return []types.CustomRepo{}
	}
	return repos
}
