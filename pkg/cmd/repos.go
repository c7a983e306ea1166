package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/spf13/cobra"
)

var reposCustomOnly bool

func init() {
	reposCmd.Flags().BoolVar(&reposCustomOnly, "custom", false, "只列出自定义仓库")
	rootCmd.AddCommand(reposCmd)
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "列出目录仓库与自定义仓库",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if reposCustomOnly {
			return executeCustomRepos(cmd.OutOrStdout(), a)
		}
		return executeRepos(cmd.OutOrStdout(), a)
	},
}

func executeRepos(w io.Writer, a *app.App) error {
	repos := a.Reconciler().Repos()
	favorites := a.Reconciler().Favorites()

	return render(w, repos, func() error {
		if len(repos) == 0 {
			fmt.Fprintln(w, "No repositories found.")
			fmt.Fprintln(w, "Use 'skillstudio add <owner/repo>' to add a custom repository.")
			return nil
		}

		table := output.NewTable(w, "Repository", "Fetched", "Custom", "Highlight", "Favorite")
		for _, repo := range repos {
			err := table.Append(
				repo.Key(),
				output.Mark(repo.IsFetched),
				output.Mark(repo.IsCustom),
				output.Star(repo.Highlight),
				output.Star(registry.Contains(favorites.Repos, repo.Key())),
			)
			if err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nTotal: %d repositories\n", len(repos))
		return nil
	})
}

func executeCustomRepos(w io.Writer, a *app.App) error {
	repos := a.Reconciler().CustomRepos()

	return render(w, repos, func() error {
		if len(repos) == 0 {
			fmt.Fprintln(w, "No custom repositories.")
			return nil
		}
		table := output.NewTable(w, "Repository", "Skills Path")
		for _, repo := range repos {
			if err := table.Append(repo.Owner+"/"+repo.Repo, repo.SkillsPath); err != nil {
				return err
			}
		}
		return table.Render()
	})
}
