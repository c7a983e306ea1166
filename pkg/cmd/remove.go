package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/install"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

var removeYes bool

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "跳过确认")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <owner/repo>",
	Short: "删除一个自定义仓库",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeRemove(cmd.InOrStdin(), cmd.OutOrStdout(), a, args[0], removeYes)
	},
}

func executeRemove(in io.Reader, w io.Writer, a *app.App, ref string, yes bool) error {
	source, err := fetch.ParseRepoRef(ref)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := install.Confirm(in, w, fmt.Sprintf("Remove custom repository %s?", source.Key()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	if err := a.Reconciler().RemoveCustomRepo(source.Owner, source.Repo); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Removed custom repository %s\n", output.Success(output.SymbolYes), source.Key())
	return nil
}
