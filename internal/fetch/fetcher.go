// Package fetch materializes local, history-free working copies of GitHub
// repositories and refreshes their skill caches.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/smy-101/skillstudio/internal/cache"
	"github.com/smy-101/skillstudio/internal/constants"
	"github.com/smy-101/skillstudio/internal/detector"
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/smy-101/skillstudio/internal/scanner"
	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

const DefaultGitBaseURL = "https://github.com"

// FetchResult describes a working copy after a fetch.
type FetchResult struct {
	Source     types.RepoSource
	Dir        string
	SkillsPath string
	Skills     []types.Skill
	FetchedAt  string
	Cloned     bool
}

// Options configures a Fetcher.
type Options struct {
	ReposDir     string
	LocksDir     string
	// StagingDir holds in-progress clones; defaults to a "tmp" sibling of
	// ReposDir so it never shares a namespace with working copies.
	StagingDir   string
	GitBaseURL   string
	CloneTimeout time.Duration
}

// Fetcher 仓库获取器
type Fetcher struct {
	fs           afero.Fs
	reposDir     string
	stagingDir   string
	gitBaseURL   string
	cloneTimeout time.Duration

	cloner  Cloner
	checker RepoChecker
	scanner *scanner.Scanner
	cache   *cache.Store
	fetched *registry.FetchedStore
	locker  *KeyLocker

	now    func() time.Time
	logger logging.Logger
}

// NewFetcher creates a Fetcher. The cloner writes to the real filesystem,
// so fsys must see the same files (afero.NewOsFs outside of tests).
func NewFetcher(fsys afero.Fs, opts Options, cloner Cloner, sc *scanner.Scanner, store *cache.Store, fetched *registry.FetchedStore) *Fetcher {
	baseURL := opts.GitBaseURL
	if baseURL == "" {
		baseURL = DefaultGitBaseURL
	}
	stagingDir := opts.StagingDir
	if stagingDir == "" {
		stagingDir = filepath.Join(filepath.Dir(opts.ReposDir), constants.StagingDir)
	}

	return &Fetcher{
		fs:           fsys,
		reposDir:     opts.ReposDir,
		stagingDir:   stagingDir,
		gitBaseURL:   strings.TrimRight(baseURL, "/"),
		cloneTimeout: opts.CloneTimeout,
		cloner:       cloner,
		scanner:      sc,
		cache:        store,
		fetched:      fetched,
		locker:       NewKeyLocker(opts.LocksDir),
		now:          time.Now,
		logger:       logging.NoOpLogger{},
	}
}

func (f *Fetcher) SetLogger(logger logging.Logger) {
	f.logger = logger
}

// SetChecker enables the existence check run before any local state is
// touched.
func (f *Fetcher) SetChecker(checker RepoChecker) {
	f.checker = checker
}

// SetClock overrides the time source for fetch timestamps.
func (f *Fetcher) SetClock(now func() time.Time) {
	f.now = now
}

// RepoURL returns the clone URL of a repository.
func (f *Fetcher) RepoURL(owner, repo string) string {
	return fmt.Sprintf("%s/%s/%s.git", f.gitBaseURL, owner, repo)
}

// RepoDir returns the working copy path of a repository.
func (f *Fetcher) RepoDir(owner, repo string) string {
	return filepath.Join(f.reposDir, owner, repo)
}

// StagingDir returns the directory in-progress clones are written to.
func (f *Fetcher) StagingDir() string {
	return f.stagingDir
}

// HasWorkingCopy reports whether a working copy exists locally.
func (f *Fetcher) HasWorkingCopy(owner, repo string) bool {
	ok, _ := afero.DirExists(f.fs, f.RepoDir(owner, repo))
	return ok
}

// Fetch replaces the working copy with a fresh shallow clone, rescans it,
// rewrites the cache and records the fetch time. When the clone fails the
// previous working copy, cache and record are left as they were.
func (f *Fetcher) Fetch(ctx context.Context, owner, repo string) (*FetchResult, error) {
	return f.run(ctx, types.RepoSource{Owner: owner, Repo: repo}, true)
}

// Ensure clones the repository only when no working copy exists, then
// rescans it, writes the cache and records the fetch time.
func (f *Fetcher) Ensure(ctx context.Context, owner, repo string) (*FetchResult, error) {
	return f.run(ctx, types.RepoSource{Owner: owner, Repo: repo}, false)
}

func (f *Fetcher) run(ctx context.Context, source types.RepoSource, replace bool) (*FetchResult, error) {
	if err := ValidateSource(source); err != nil {
		return nil, err
	}

	unlock, err := f.locker.Lock(source.Key())
	if err != nil {
		return nil, skillerr.IO("failed to acquire fetch lock", err)
	}
	defer unlock()

	repoDir := f.RepoDir(source.Owner, source.Repo)
	cloned := false

	if replace || !f.HasWorkingCopy(source.Owner, source.Repo) {
		if err := f.preflight(ctx, source); err != nil {
			return nil, err
		}
		if err := f.cloneInto(ctx, source, repoDir); err != nil {
			return nil, err
		}
		cloned = true
	}

	skills := f.scanner.Scan(source, []string{})
	if err := f.cache.Write(source.Owner, source.Repo, skills); err != nil {
		return nil, err
	}

	fetchedAt := registry.FormatTimestamp(f.now())
	if err := f.fetched.Record(source.Key(), fetchedAt); err != nil {
		return nil, wrapIO("failed to record fetched repository", err)
	}

	f.logger.Info("Fetched repository", "repo", source.Key(), "cloned", cloned, "skills", len(skills))

	return &FetchResult{
		Source:     source,
		Dir:        repoDir,
		SkillsPath: detector.DetectSkillsPath(f.fs, repoDir),
		Skills:     skills,
		FetchedAt:  fetchedAt,
		Cloned:     cloned,
	}, nil
}

func (f *Fetcher) preflight(ctx context.Context, source types.RepoSource) error {
	if f.checker == nil {
		return nil
	}
	return f.checker.CheckRepository(ctx, source.Owner, source.Repo)
}

// cloneInto clones into a fresh directory under the staging dir and renames
// it over repoDir once the clone succeeded.
func (f *Fetcher) cloneInto(ctx context.Context, source types.RepoSource, repoDir string) error {
	parent := filepath.Dir(repoDir)
	if err := f.fs.MkdirAll(parent, 0o755); err != nil {
		return skillerr.IO("failed to create repository directory", err)
	}

	if err := f.fs.MkdirAll(f.stagingDir, 0o755); err != nil {
		return skillerr.IO("failed to create staging directory", err)
	}
	tmpDir, err := afero.TempDir(f.fs, f.stagingDir, source.Owner+"__"+source.Repo+"-")
	if err != nil {
		return skillerr.IO("failed to create temporary clone directory", err)
	}

	if f.cloneTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cloneTimeout)
		defer cancel()
	}

	url := f.RepoURL(source.Owner, source.Repo)
	f.logger.Debug("Cloning repository", "url", url, "dest", tmpDir)
	if err := f.cloner.Clone(ctx, url, tmpDir); err != nil {
		_ = f.fs.RemoveAll(tmpDir)
		var typed *skillerr.Error
		if errors.As(err, &typed) {
			return err
		}
		return skillerr.Process(fmt.Sprintf("failed to clone %s", url), err)
	}

	// .git 删除失败不影响结果
	if err := f.fs.RemoveAll(filepath.Join(tmpDir, constants.GitMetadataDir)); err != nil {
		f.logger.Debug("Failed to remove git metadata", "dir", tmpDir, "error", err)
	}

	if err := f.fs.RemoveAll(repoDir); err != nil {
		_ = f.fs.RemoveAll(tmpDir)
		return skillerr.IO("failed to remove existing working copy", err)
	}

	if err := f.fs.Rename(tmpDir, repoDir); err != nil {
		_ = f.fs.RemoveAll(tmpDir)
		return skillerr.IO("failed to move cloned repository into place", err)
	}

	return nil
}

// RemoveWorkingCopy deletes the working copy (and with it the cache) and
// drops the fetched record.
func (f *Fetcher) RemoveWorkingCopy(owner, repo string) error {
	source := types.RepoSource{Owner: owner, Repo: repo}
	if err := ValidateSource(source); err != nil {
		return err
	}

	unlock, err := f.locker.Lock(source.Key())
	if err != nil {
		return skillerr.IO("failed to acquire fetch lock", err)
	}
	defer unlock()

	if err := f.fs.RemoveAll(f.RepoDir(owner, repo)); err != nil {
		return skillerr.IO("failed to remove working copy", err)
	}

	// 仓库目录为空时一并删除 owner 目录
	ownerDir := filepath.Join(f.reposDir, owner)
	if empty, err := afero.IsEmpty(f.fs, ownerDir); err == nil && empty {
		_ = f.fs.Remove(ownerDir)
	}

	if err := f.fetched.Remove(source.Key()); err != nil {
		return wrapIO("failed to update fetched repositories", err)
	}

	f.logger.Info("Removed working copy", "repo", source.Key())
	return nil
}

func wrapIO(message string, err error) error {
	var typed *skillerr.Error
	if errors.As(err, &typed) {
		return err
	}
	return skillerr.IO(message, err)
}
