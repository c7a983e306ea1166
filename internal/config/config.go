// Package config resolves skillstudio paths and options from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/smy-101/skillstudio/internal/constants"
	"github.com/spf13/viper"
)

// 配置键
const (
	KeyDataDir      = "data_dir"
	KeyConfigDir    = "config_dir"
	KeyInstalledDir = "installed_dir"
	KeyCatalogPath  = "catalog_path"
	KeyGitBaseURL   = "git_base_url"
	KeyGitHubAPIURL = "github_api_url"
	KeyGitHubToken  = "github_token"
	KeyProxy        = "proxy"
	KeyPreflight    = "preflight"
	KeyCloneTimeout = "clone_timeout"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

// Keys lists every configuration key in display order.
func Keys() []string {
	return []string{
		KeyDataDir, KeyConfigDir, KeyInstalledDir, KeyCatalogPath,
		KeyGitBaseURL, KeyGitHubAPIURL, KeyGitHubToken, KeyProxy,
		KeyPreflight, KeyCloneTimeout, KeyLogLevel, KeyLogFormat,
	}
}

// IsKey reports whether key is a known configuration key.
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

const (
	EnvPrefix     = "SKILLSTUDIO"
	DirName       = ".skillstudio"
	FileName      = "config"
	FileType      = "json"
	DefaultLevel  = "warn"
	DefaultFormat = "text"
)

// Config is the effective configuration.
type Config struct {
	DataDir      string        `json:"data_dir" yaml:"data_dir"`
	ConfigDir    string        `json:"config_dir" yaml:"config_dir"`
	InstalledDir string        `json:"installed_dir" yaml:"installed_dir"`
	CatalogPath  string        `json:"catalog_path" yaml:"catalog_path"`
	GitBaseURL   string        `json:"git_base_url" yaml:"git_base_url"`
	GitHubAPIURL string        `json:"github_api_url" yaml:"github_api_url"`
	GitHubToken  string        `json:"github_token" yaml:"github_token"`
	Proxy        string        `json:"proxy" yaml:"proxy"`
	Preflight    bool          `json:"preflight" yaml:"preflight"`
	CloneTimeout time.Duration `json:"clone_timeout" yaml:"clone_timeout"`
	LogLevel     string        `json:"log_level" yaml:"log_level"`
	LogFormat    string        `json:"log_format" yaml:"log_format"`
}

// FileDefaults is written to a freshly created config file.
func FileDefaults() map[string]interface{} {
	return map[string]interface{}{
		KeyGitHubToken: "",
		KeyProxy:       "",
		KeyPreflight:   false,
		KeyLogLevel:    DefaultLevel,
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper, home string) {
	v.SetDefault(KeyDataDir, filepath.Join(userDataDir(home), constants.AppDirName))
	v.SetDefault(KeyConfigDir, filepath.Join(userConfigDir(home), constants.AppDirName))
	v.SetDefault(KeyInstalledDir, filepath.Join(home, ".claude", "skills"))
	v.SetDefault(KeyCatalogPath, DefaultCatalogPath())
	v.SetDefault(KeyGitBaseURL, "https://github.com")
	v.SetDefault(KeyGitHubAPIURL, "https://api.github.com")
	v.SetDefault(KeyGitHubToken, "")
	v.SetDefault(KeyProxy, "")
	v.SetDefault(KeyPreflight, false)
	v.SetDefault(KeyCloneTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, DefaultLevel)
	v.SetDefault(KeyLogFormat, DefaultFormat)
}

// Load reads the effective configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataDir:      v.GetString(KeyDataDir),
		ConfigDir:    v.GetString(KeyConfigDir),
		InstalledDir: v.GetString(KeyInstalledDir),
		CatalogPath:  v.GetString(KeyCatalogPath),
		GitBaseURL:   v.GetString(KeyGitBaseURL),
		GitHubAPIURL: v.GetString(KeyGitHubAPIURL),
		GitHubToken:  v.GetString(KeyGitHubToken),
		Proxy:        v.GetString(KeyProxy),
		Preflight:    v.GetBool(KeyPreflight),
		CloneTimeout: v.GetDuration(KeyCloneTimeout),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
	}

	for key, value := range map[string]string{
		KeyDataDir:      cfg.DataDir,
		KeyConfigDir:    cfg.ConfigDir,
		KeyInstalledDir: cfg.InstalledDir,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s must not be empty", key)
		}
	}
	if cfg.CloneTimeout < 0 {
		return nil, fmt.Errorf("%s must not be negative", KeyCloneTimeout)
	}

	return cfg, nil
}

func (c *Config) ReposDir() string {
	return filepath.Join(c.DataDir, constants.ReposDir)
}

func (c *Config) LocksDir() string {
	return filepath.Join(c.DataDir, constants.LocksDir)
}

func (c *Config) FetchedReposPath() string {
	return filepath.Join(c.ConfigDir, constants.FetchedReposFile)
}

func (c *Config) CustomReposPath() string {
	return filepath.Join(c.ConfigDir, constants.CustomReposFile)
}

func (c *Config) FavoritesPath() string {
	return filepath.Join(c.ConfigDir, constants.FavoritesFile)
}

func (c *Config) SettingsPath() string {
	return filepath.Join(c.ConfigDir, constants.SettingsFile)
}

// DefaultCatalogPath prefers library/catalog.json next to the executable
// and falls back to ./library/catalog.json.
func DefaultCatalogPath() string {
	rel := filepath.Join(constants.LibraryDir, constants.CatalogFile)
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return rel
}

func userDataDir(home string) string {
	if runtime.GOOS == "linux" {
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir
		}
		return filepath.Join(home, ".local", "share")
	}
	return userConfigDir(home)
}

func userConfigDir(home string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(home, ".config")
}
