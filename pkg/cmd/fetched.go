package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/registry"
	"github.com/spf13/cobra"
)

const dateFormat = "2006-01-02 15:04"

func init() {
	rootCmd.AddCommand(fetchedCmd)
}

var fetchedCmd = &cobra.Command{
	Use:   "fetched",
	Short: "列出已拉取的仓库及拉取时间",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeFetched(cmd.OutOrStdout(), a)
	},
}

func executeFetched(w io.Writer, a *app.App) error {
	fetched := a.Reconciler().FetchedRepos()

	return render(w, fetched, func() error {
		if len(fetched.Repos) == 0 {
			fmt.Fprintln(w, "No repositories fetched yet.")
			fmt.Fprintln(w, "Use 'skillstudio fetch <owner/repo>' to fetch one.")
			return nil
		}

		keys := make([]string, 0, len(fetched.Repos))
		for key := range fetched.Repos {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		table := output.NewTable(w, "Repository", "Fetched At")
		for _, key := range keys {
			fetchedAt := fetched.Repos[key]
			if ts, err := registry.ParseTimestamp(fetchedAt); err == nil {
				fetchedAt = ts.Local().Format(dateFormat)
			}
			if err := table.Append(key, fetchedAt); err != nil {
				return err
			}
		}
		return table.Render()
	})
}
