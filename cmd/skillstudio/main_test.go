package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitViper(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(*testing.T) string
		checkFunc func(*testing.T, string)
	}{
		{
			name: "creates new config file when it doesn't exist",
			setupFunc: func(t *testing.T) string {
				t.Helper()
				return t.TempDir()
			},
			checkFunc: func(t *testing.T, homeDir string) {
				t.Helper()
				configPath := filepath.Join(homeDir, ".skillstudio", "config.json")

				data, err := os.ReadFile(configPath)
				require.NoError(t, err, "config file was not created at %s", configPath)

				var cfg map[string]interface{}
				require.NoError(t, json.Unmarshal(data, &cfg))

				assert.Equal(t, "", cfg["github_token"])
				assert.Equal(t, "", cfg["proxy"])
				assert.Equal(t, false, cfg["preflight"])
				assert.Equal(t, "warn", cfg["log_level"])
			},
		},
		{
			name: "reads existing config file",
			setupFunc: func(t *testing.T) string {
				t.Helper()
				homeDir := t.TempDir()
				configDir := filepath.Join(homeDir, ".skillstudio")
				require.NoError(t, os.MkdirAll(configDir, 0755))

				data, err := json.MarshalIndent(map[string]interface{}{
					"github_token":  "test_token_123",
					"proxy":         "http://proxy.example.com:8080",
					"installed_dir": "/tmp/skills",
				}, "", "  ")
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644))

				return homeDir
			},
			checkFunc: func(t *testing.T, homeDir string) {
				t.Helper()
				assert.Equal(t, "test_token_123", viper.GetString("github_token"))
				assert.Equal(t, "http://proxy.example.com:8080", viper.GetString("proxy"))
				assert.Equal(t, "/tmp/skills", viper.GetString("installed_dir"))
			},
		},
		{
			name: "uses viper defaults for unset keys",
			setupFunc: func(t *testing.T) string {
				t.Helper()
				homeDir := t.TempDir()
				require.NoError(t, os.MkdirAll(filepath.Join(homeDir, ".skillstudio"), 0755))
				return homeDir
			},
			checkFunc: func(t *testing.T, homeDir string) {
				t.Helper()
				assert.Equal(t, "", viper.GetString("github_token"))
				assert.Equal(t, "https://github.com", viper.GetString("git_base_url"))
				assert.Equal(t, filepath.Join(homeDir, ".claude", "skills"), viper.GetString("installed_dir"))
				assert.FileExists(t, filepath.Join(homeDir, ".skillstudio", "config.json"))
			},
		},
		{
			name: "environment overrides file",
			setupFunc: func(t *testing.T) string {
				t.Helper()
				t.Setenv("SKILLSTUDIO_LOG_LEVEL", "debug")
				return t.TempDir()
			},
			checkFunc: func(t *testing.T, homeDir string) {
				t.Helper()
				assert.Equal(t, "debug", viper.GetString("log_level"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			homeDir := tt.setupFunc(t)
			t.Setenv("HOME", homeDir)

			viper.Reset()
			initViper()

			tt.checkFunc(t, homeDir)
		})
	}
}

func TestMainRuns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()

	t.Run("main executes without panicking", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("main() panicked: %v", r)
			}
		}()

		os.Args = []string{"skillstudio", "--help"}
		main()
	})
}
