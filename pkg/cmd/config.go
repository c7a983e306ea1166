package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/smy-101/skillstudio/internal/config"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configMu serializes writes to the global viper instance.
var configMu sync.Mutex

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "显示当前配置",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeConfigList(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "读取配置项",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeConfigGet(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "写入配置项",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeConfigSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

func executeConfigList(w io.Writer) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	masked := *cfg
	masked.GitHubToken = maskToken(cfg.GitHubToken)

	return render(w, masked, func() error {
		fmt.Fprintln(w, "config file:", viper.ConfigFileUsed())
		table := output.NewTable(w, "Key", "Value")
		for _, key := range config.Keys() {
			value := viper.GetString(key)
			if key == config.KeyGitHubToken {
				value = maskToken(value)
			}
			if err := table.Append(key, value); err != nil {
				return err
			}
		}
		return table.Render()
	})
}

func executeConfigGet(w io.Writer, key string) error {
	if !config.IsKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(config.Keys(), ", "))
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func executeConfigSet(w io.Writer, key, value string) error {
	if !config.IsKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(config.Keys(), ", "))
	}

	configMu.Lock()
	defer configMu.Unlock()

	viper.Set(key, value)
	if _, err := config.Load(viper.GetViper()); err != nil {
		return err
	}
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "%s %s = %s\n", output.Success(output.SymbolYes), key, value)
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
