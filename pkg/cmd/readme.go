package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(readmeCmd)
}

var readmeCmd = &cobra.Command{
	Use:   "readme <owner/repo>",
	Short: "显示已拉取仓库的 README",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeReadme(cmd.OutOrStdout(), a, args[0])
	},
}

func executeReadme(w io.Writer, a *app.App, ref string) error {
	source, err := fetch.ParseRepoRef(ref)
	if err != nil {
		return err
	}

	content, ok, err := a.Reconciler().Readme(source.Owner, source.Repo)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(w, "No README for %s. Has it been fetched?\n", source.Key())
		return nil
	}
	fmt.Fprint(w, content)
	return nil
}
