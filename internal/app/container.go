// Package app wires skillstudio components using go.uber.org/dig.
package app

import (
	"io"
	"os"

	"github.com/smy-101/skillstudio/internal/cache"
	"github.com/smy-101/skillstudio/internal/catalog"
	"github.com/smy-101/skillstudio/internal/config"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/install"
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/smy-101/skillstudio/internal/scanner"
	"github.com/spf13/afero"
	"go.uber.org/dig"
)

// App holds the resolved components. Callers use the getters and never
// import dig.
type App struct {
	cfg        *config.Config
	logger     logging.Logger
	reconciler *catalog.Reconciler
	fetcher    *fetch.Fetcher
	installer  *install.Installer
	settings   *registry.SettingsStore
	favorites  *registry.FavoritesStore
}

func (a *App) Config() *config.Config              { return a.cfg }
func (a *App) Logger() logging.Logger              { return a.logger }
func (a *App) Reconciler() *catalog.Reconciler     { return a.reconciler }
func (a *App) Fetcher() *fetch.Fetcher             { return a.fetcher }
func (a *App) Installer() *install.Installer       { return a.installer }
func (a *App) Settings() *registry.SettingsStore   { return a.settings }
func (a *App) Favorites() *registry.FavoritesStore { return a.favorites }

// Options overrides the collaborators that touch the outside world.
type Options struct {
	Fs        afero.Fs
	Cloner    fetch.Cloner
	Runner    install.Runner
	Checker   fetch.RepoChecker
	LogOutput io.Writer
}

// New builds and wires all components from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	d := dig.New()

	providers := []interface{}{
		func() *config.Config { return cfg },
		func() Options { return opts },
		newFs,
		newLogger,
		newScanner,
		newCache,
		newStores,
		newSettings,
		newCloner,
		newFetcher,
		newReconciler,
		newRunner,
		newInstaller,
	}
	for _, p := range providers {
		if err := d.Provide(p); err != nil {
			return nil, err
		}
	}

	var result *App
	err := d.Invoke(func(
		logger logging.Logger,
		reconciler *catalog.Reconciler,
		fetcher *fetch.Fetcher,
		installer *install.Installer,
		settings *registry.SettingsStore,
		stores catalog.Stores,
	) {
		result = &App{
			cfg:        cfg,
			logger:     logger,
			reconciler: reconciler,
			fetcher:    fetcher,
			installer:  installer,
			settings:   settings,
			favorites:  stores.Favorites,
		}
	})
	return result, err
}

func newFs(opts Options) afero.Fs {
	if opts.Fs != nil {
		return opts.Fs
	}
	return afero.NewOsFs()
}

func newLogger(cfg *config.Config, opts Options) (logging.Logger, error) {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	return logging.New(cfg.LogLevel, cfg.LogFormat, out)
}

func newScanner(fsys afero.Fs, cfg *config.Config, logger logging.Logger) *scanner.Scanner {
	s := scanner.NewScanner(fsys, cfg.ReposDir())
	s.SetLogger(logger)
	return s
}

func newCache(fsys afero.Fs, cfg *config.Config, logger logging.Logger) *cache.Store {
	s := cache.NewStore(fsys, cfg.ReposDir())
	s.SetLogger(logger)
	return s
}

func newStores(fsys afero.Fs, cfg *config.Config, logger logging.Logger) catalog.Stores {
	fetched := registry.NewFetchedStore(fsys, cfg.FetchedReposPath())
	fetched.SetLogger(logger)
	custom := registry.NewCustomStore(fsys, cfg.CustomReposPath())
	custom.SetLogger(logger)
	favorites := registry.NewFavoritesStore(fsys, cfg.FavoritesPath())
	favorites.SetLogger(logger)

	return catalog.Stores{Fetched: fetched, Custom: custom, Favorites: favorites}
}

func newSettings(fsys afero.Fs, cfg *config.Config) *registry.SettingsStore {
	return registry.NewSettingsStore(fsys, cfg.SettingsPath())
}

func newCloner(cfg *config.Config, opts Options) fetch.Cloner {
	if opts.Cloner != nil {
		return opts.Cloner
	}
	cloner := fetch.NewGitCloner()
	cloner.Proxy = cfg.Proxy
	return cloner
}

func newFetcher(fsys afero.Fs, cfg *config.Config, opts Options, cloner fetch.Cloner, sc *scanner.Scanner, store *cache.Store, stores catalog.Stores, logger logging.Logger) *fetch.Fetcher {
	f := fetch.NewFetcher(fsys, fetch.Options{
		ReposDir:     cfg.ReposDir(),
		LocksDir:     cfg.LocksDir(),
		GitBaseURL:   cfg.GitBaseURL,
		CloneTimeout: cfg.CloneTimeout,
	}, cloner, sc, store, stores.Fetched)
	f.SetLogger(logger)

	switch {
	case opts.Checker != nil:
		f.SetChecker(opts.Checker)
	case cfg.Preflight:
		client := fetch.NewGitHubClient(cfg.GitHubToken)
		client.SetBaseURL(cfg.GitHubAPIURL)
		client.SetProxy(cfg.Proxy)
		f.SetChecker(client)
	}
	return f
}

func newReconciler(fsys afero.Fs, cfg *config.Config, sc *scanner.Scanner, store *cache.Store, stores catalog.Stores, fetcher *fetch.Fetcher, logger logging.Logger) *catalog.Reconciler {
	r := catalog.NewReconciler(fsys, cfg.CatalogPath, cfg.InstalledDir, sc, store, stores, fetcher)
	r.SetLogger(logger)
	return r
}

func newRunner(opts Options) install.Runner {
	if opts.Runner != nil {
		return opts.Runner
	}
	return install.ExecRunner{}
}

func newInstaller(fsys afero.Fs, cfg *config.Config, runner install.Runner, logger logging.Logger) *install.Installer {
	i := install.NewInstaller(fsys, cfg.ReposDir(), cfg.InstalledDir, runner)
	i.SetLogger(logger)
	return i
}
