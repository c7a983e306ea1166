package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/install"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

var uninstallYes bool

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "跳过确认")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "卸载一个已安装的技能",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeUninstall(cmd.InOrStdin(), cmd.OutOrStdout(), a, args[0], uninstallYes)
	},
}

func executeUninstall(in io.Reader, w io.Writer, a *app.App, name string, yes bool) error {
	path, err := a.Installer().InstalledPath(name)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := install.Confirm(in, w, fmt.Sprintf("Uninstall %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	if err := a.Installer().Uninstall(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Uninstalled %s\n", output.Success(output.SymbolYes), name)
	return nil
}
