package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "显示内置仓库目录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeCatalog(cmd.OutOrStdout(), a)
	},
}

func executeCatalog(w io.Writer, a *app.App) error {
	catalog, err := a.Reconciler().Catalog()
	if err != nil {
		return err
	}

	return render(w, catalog, func() error {
		table := output.NewTable(w, "Repository", "Highlight")
		for _, repo := range catalog.Repos {
			if err := table.Append(repo.URL, output.Star(repo.Highlight)); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nVersion: %s  Last updated: %s  Total: %d repositories\n", catalog.Version, catalog.LastUpdated, len(catalog.Repos))
		return nil
	})
}
