package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	favoritesCmd.AddCommand(favoritesSkillCmd, favoritesRepoCmd)
	rootCmd.AddCommand(favoritesCmd)
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "查看收藏的技能与仓库",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeFavorites(cmd.OutOrStdout(), a)
	},
}

var favoritesSkillCmd = &cobra.Command{
	Use:   "skill <skill_id>",
	Short: "收藏或取消收藏一个技能",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeToggleFavoriteSkill(cmd.OutOrStdout(), a, args[0])
	},
}

var favoritesRepoCmd = &cobra.Command{
	Use:   "repo <owner/repo>",
	Short: "收藏或取消收藏一个仓库",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeToggleFavoriteRepo(cmd.OutOrStdout(), a, args[0])
	},
}

func executeFavorites(w io.Writer, a *app.App) error {
	favorites := a.Favorites().Load()

	return render(w, favorites, func() error {
		if len(favorites.Skills) == 0 && len(favorites.Repos) == 0 {
			fmt.Fprintln(w, "No favorites yet.")
			return nil
		}
		table := output.NewTable(w, "Kind", "ID")
		for _, key := range favorites.Repos {
			if err := table.Append("repo", key); err != nil {
				return err
			}
		}
		for _, id := range favorites.Skills {
			if err := table.Append("skill", id); err != nil {
				return err
			}
		}
		return table.Render()
	})
}

func executeToggleFavoriteSkill(w io.Writer, a *app.App, id string) error {
	favorites, err := a.Favorites().ToggleSkill(id)
	if err != nil {
		return err
	}
	printToggle(w, id, registry.Contains(favorites.Skills, id))
	return nil
}

func executeToggleFavoriteRepo(w io.Writer, a *app.App, ref string) error {
	source, err := fetch.ParseRepoRef(ref)
	if err != nil {
		return err
	}
	key := types.RepoKey(source.Owner, source.Repo)

	favorites, err := a.Favorites().ToggleRepo(key)
	if err != nil {
		return err
	}
	printToggle(w, key, registry.Contains(favorites.Repos, key))
	return nil
}

func printToggle(w io.Writer, id string, on bool) {
	if on {
		fmt.Fprintf(w, "%s Added %s to favorites\n", output.Star(true), id)
		return
	}
	fmt.Fprintf(w, "Removed %s from favorites\n", id)
}
