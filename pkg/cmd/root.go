package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/config"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var outputFlag string

var rootCmd = &cobra.Command{
	Use:   "skillstudio",
	Short: "skillstudio CLI",
	Long:  "skillstudio CLI 工具入口：浏览技能仓库目录、拉取仓库并安装技能",

	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	SilenceErrors:     true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "输出格式: table, json, yaml")
}

// loadApp builds the application from the global viper configuration.
// Tests replace it.
var loadApp = func() (*app.App, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return app.New(cfg, app.Options{})
}

func outputFormat() (output.Format, error) {
	f, err := output.ParseFormat(outputFlag)
	if err != nil {
		return "", err
	}
	if f.Structured() {
		output.DisableColors()
	}
	return f, nil
}

// render encodes v for structured formats, or calls table otherwise.
func render(w io.Writer, v interface{}, table func() error) error {
	f, err := outputFormat()
	if err != nil {
		return err
	}
	if f.Structured() {
		return output.Encode(w, f, v)
	}
	return table()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, output.Error("Error:"), err)
		os.Exit(1)
	}
}
