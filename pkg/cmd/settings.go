package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "查看用户设置",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeSettingsGet(cmd.OutOrStdout(), a)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <copy|npx>",
	Short:     "设置默认安装方式",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(types.InstallMethodCopy), string(types.InstallMethodNpx)},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeSettingsSet(cmd.OutOrStdout(), a, args[0])
	},
}

func executeSettingsGet(w io.Writer, a *app.App) error {
	settings, err := a.Settings().Load()
	if err != nil {
		return err
	}

	return render(w, settings, func() error {
		fmt.Fprintln(w, "settings file:", a.Settings().Path())
		table := output.NewTable(w, "Setting", "Value")
		if err := table.Append("installMethod", string(settings.InstallMethod)); err != nil {
			return err
		}
		return table.Render()
	})
}

func executeSettingsSet(w io.Writer, a *app.App, method string) error {
	settings, err := a.Settings().Load()
	if err != nil {
		return err
	}

	settings.InstallMethod = types.InstallMethod(method)
	if err := a.Settings().Save(settings); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s installMethod = %s\n", output.Success(output.SymbolYes), method)
	return nil
}
