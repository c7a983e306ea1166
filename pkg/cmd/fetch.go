package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <owner/repo>",
	Short: "拉取(或重新拉取)仓库并扫描其中的技能",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeFetch(cmd.Context(), cmd.OutOrStdout(), a, args[0])
	},
}

func executeFetch(ctx context.Context, w io.Writer, a *app.App, ref string) error {
	source, err := fetch.ParseRepoRef(ref)
	if err != nil {
		return err
	}

	result, err := a.Reconciler().Fetch(ctx, source.Owner, source.Repo)
	if err != nil {
		return err
	}

	f, err := outputFormat()
	if err != nil {
		return err
	}
	if f.Structured() {
		return output.Encode(w, f, result.Skills)
	}

	fmt.Fprintf(w, "%s Fetched %s (%d skills, skills path %q)\n",
		output.Success(output.SymbolYes), source.Key(), len(result.Skills), result.SkillsPath)
	return nil
}
