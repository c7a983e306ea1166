package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/smy-101/skillstudio/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigTest(t *testing.T) (func(), string) {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.json")

	originalConfigFile := viper.ConfigFileUsed()
	originalOutput := outputFlag

	viper.Reset()
	viper.SetConfigFile(configPath)
	config.SetDefaults(viper.GetViper(), tempDir)
	outputFlag = "table"

	cleanup := func() {
		viper.Reset()
		outputFlag = originalOutput
		if originalConfigFile != "" {
			viper.SetConfigFile(originalConfigFile)
		}
	}

	return cleanup, tempDir
}

func TestExecuteConfigGet(t *testing.T) {
	t.Run("valid key with value", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		viper.Set("github_token", "test-token-123")

		var buf bytes.Buffer
		require.NoError(t, executeConfigGet(&buf, "github_token"))
		assert.Equal(t, "test-token-123\n", buf.String())
	})

	t.Run("valid key without value", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		require.NoError(t, executeConfigGet(&buf, "proxy"))
		assert.Equal(t, "\n", buf.String())
	})

	t.Run("default value", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		require.NoError(t, executeConfigGet(&buf, "git_base_url"))
		assert.Equal(t, "https://github.com\n", buf.String())
	})

	t.Run("invalid key", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		assert.Error(t, executeConfigGet(&buf, "invalid_key"))
	})
}

func TestExecuteConfigSet(t *testing.T) {
	t.Run("persists value", func(t *testing.T) {
		cleanup, tempDir := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		require.NoError(t, executeConfigSet(&buf, "proxy", "http://127.0.0.1:7890"))

		data, err := os.ReadFile(filepath.Join(tempDir, "config.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "http://127.0.0.1:7890")
	})

	t.Run("rejects invalid value", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		assert.Error(t, executeConfigSet(&buf, "data_dir", ""))
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		assert.Error(t, executeConfigSet(&buf, "nope", "x"))
	})
}

func TestConcurrentConfigAccess(t *testing.T) {
	cleanup, tempDir := setupConfigTest(t)
	defer cleanup()

	configPath := filepath.Join(tempDir, "config.json")
	keys := []string{config.KeyGitHubToken, config.KeyProxy}

	var wg sync.WaitGroup
	numGoroutines := 10
	numOperations := 5

	// 并发写入配置
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				key := keys[index%len(keys)]
				value := fmt.Sprintf("concurrent-value-%d-%d", index, j)
				if err := executeConfigSet(&bytes.Buffer{}, key, value); err != nil {
					t.Errorf("concurrent set failed: %v", err)
				}
			}
		}(i)
	}

	wg.Wait()

	// 验证配置文件存在且可读
	_, err := os.Stat(configPath)
	assert.NoError(t, err, "config file does not exist after concurrent writes")
}

func TestExecuteConfigList(t *testing.T) {
	t.Run("list all configs", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		viper.Set("github_token", "test-token")
		viper.Set("proxy", "http://proxy.example.com")

		var buf bytes.Buffer
		require.NoError(t, executeConfigList(&buf))
		assert.Contains(t, buf.String(), "http://proxy.example.com")
		assert.Contains(t, buf.String(), "****oken")
		assert.NotContains(t, buf.String(), "test-token")
	})

	t.Run("structured output masks token", func(t *testing.T) {
		for _, format := range []string{"json", "yaml"} {
			cleanup, _ := setupConfigTest(t)
			outputFlag = format
			viper.Set("github_token", "ghp-secret-value")

			var buf bytes.Buffer
			require.NoError(t, executeConfigList(&buf))
			assert.Contains(t, buf.String(), "****alue", format)
			assert.NotContains(t, buf.String(), "ghp-secret-value", format)
			cleanup()
		}
	})

	t.Run("list default configs", func(t *testing.T) {
		cleanup, _ := setupConfigTest(t)
		defer cleanup()

		var buf bytes.Buffer
		require.NoError(t, executeConfigList(&buf))
		assert.Contains(t, buf.String(), "installed_dir")
	})
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "****", maskToken("abc"))
	assert.Equal(t, "****6789", maskToken("ghp_123456789"))
}

func TestConfigGetCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{
			name:        "no args",
			args:        []string{},
			expectError: true,
		},
		{
			name:        "one arg",
			args:        []string{"github_token"},
			expectError: false,
		},
		{
			name:        "too many args",
			args:        []string{"github_token", "extra"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup, _ := setupConfigTest(t)
			defer cleanup()

			cmd := &cobra.Command{}
			err := configGetCmd.Args(cmd, tt.args)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigSetCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{
			name:        "no args",
			args:        []string{},
			expectError: true,
		},
		{
			name:        "one arg",
			args:        []string{"github_token"},
			expectError: true,
		},
		{
			name:        "two args",
			args:        []string{"github_token", "value"},
			expectError: false,
		},
		{
			name:        "too many args",
			args:        []string{"github_token", "value", "extra"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup, _ := setupConfigTest(t)
			defer cleanup()

			cmd := &cobra.Command{}
			err := configSetCmd.Args(cmd, tt.args)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddCmdArgs(t *testing.T) {
	cmd := &cobra.Command{}
	assert.Error(t, addCmd.Args(cmd, nil))
	assert.NoError(t, addCmd.Args(cmd, []string{"me/tools"}))
	assert.Error(t, addCmd.Args(cmd, []string{"a/b", "c/d"}))
}
