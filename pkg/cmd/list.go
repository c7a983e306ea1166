package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/cobra"
)

const (
	colID          = "ID"
	colName        = "Name"
	colDescription = "Description"
	colInstalled   = "Installed"
	colFavorite    = "Favorite"
	descWidth      = 60
	emptyMsg       = "No skills found."
	usageHint      = "Use 'skillstudio fetch <owner/repo>' to fetch a repository first."
)

// listFilter narrows the skill listing.
type listFilter struct {
	repo      string
	installed bool
	favorites bool
	match     string
	search    string
}

var listOpts listFilter

func init() {
	listCmd.Flags().StringVar(&listOpts.repo, "repo", "", "只显示指定仓库 (owner/repo)")
	listCmd.Flags().BoolVar(&listOpts.installed, "installed", false, "只显示已安装的技能")
	listCmd.Flags().BoolVar(&listOpts.favorites, "favorites", false, "只显示收藏的技能")
	listCmd.Flags().StringVar(&listOpts.match, "match", "", "按 glob 匹配技能 ID, 例如 'anthropics/*/pdf-*'")
	listCmd.Flags().StringVar(&listOpts.search, "search", "", "按名称、描述或仓库搜索 (不区分大小写)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "skills",
	Aliases: []string{"list"},
	Short:   "列出所有已拉取仓库中的技能",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeList(cmd.OutOrStdout(), a, listOpts)
	},
}

// executeList displays the skills of every fetched repository that pass filter.
func executeList(w io.Writer, a *app.App, filter listFilter) error {
	skills, err := filterSkills(a.Reconciler().Skills(), a.Reconciler().Favorites(), filter)
	if err != nil {
		return err
	}

	return render(w, skills, func() error {
		if len(skills) == 0 {
			fmt.Fprintln(w, emptyMsg)
			fmt.Fprintln(w, usageHint)
			return nil
		}

		favorites := a.Reconciler().Favorites()
		table := output.NewTable(w, colID, colName, colDescription, colInstalled, colFavorite)
		for _, skill := range skills {
			err := table.Append(
				skill.ID,
				skill.Name,
				output.Truncate(skill.Description, descWidth),
				output.Mark(skill.IsInstalled),
				output.Star(registry.Contains(favorites.Skills, skill.ID)),
			)
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		fmt.Fprintf(w, "\nTotal: %d skills\n", len(skills))
		return nil
	})
}

func filterSkills(skills []types.Skill, favorites types.Favorites, filter listFilter) ([]types.Skill, error) {
	var repoKey string
	if filter.repo != "" {
		source, err := fetch.ParseRepoRef(filter.repo)
		if err != nil {
			return nil, err
		}
		repoKey = source.Key()
	}
	if filter.match != "" && !doublestar.ValidatePattern(filter.match) {
		return nil, fmt.Errorf("invalid --match pattern %q", filter.match)
	}

	search := strings.ToLower(strings.TrimSpace(filter.search))

	result := make([]types.Skill, 0, len(skills))
	for _, skill := range skills {
		if repoKey != "" && types.RepoKey(skill.Owner, skill.Repo) != repoKey {
			continue
		}
		if filter.installed && !skill.IsInstalled {
			continue
		}
		if filter.favorites && !registry.Contains(favorites.Skills, skill.ID) {
			continue
		}
		if filter.match != "" {
			if ok, _ := doublestar.Match(filter.match, skill.ID); !ok {
				continue
			}
		}
		if search != "" && !matchesSearch(skill, search) {
			continue
		}
		result = append(result, skill)
	}
	return result, nil
}

// matchesSearch expects needle to be lower-cased already.
func matchesSearch(skill types.Skill, needle string) bool {
	for _, field := range []string{skill.Name, skill.Description, types.RepoKey(skill.Owner, skill.Repo)} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
