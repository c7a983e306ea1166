package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smy-101/skillstudio/internal/config"
	"github.com/smy-101/skillstudio/pkg/cmd"
	"github.com/spf13/viper"
)

func main() {
	initViper()
	cmd.Execute()
}

func initViper() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("Error getting home directory: %v\n", err)
		os.Exit(1)
	}

	config.SetDefaults(viper.GetViper(), home)
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	configDir := filepath.Join(home, config.DirName)
	configPath := filepath.Join(configDir, config.FileName+"."+config.FileType)

	viper.SetConfigName(config.FileName)
	viper.SetConfigType(config.FileType)
	viper.AddConfigPath(configDir)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			fmt.Printf("Error creating config directory: %v\n", err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(config.FileDefaults(), "", "  ")
		if err != nil {
			fmt.Printf("Error creating default config: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			fmt.Printf("Error writing config file: %v\n", err)
			os.Exit(1)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
