package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/fetch"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <owner/repo | github_url>",
	Short: "添加自定义 GitHub 技能仓库",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("用法:skillstudio add <owner/repo | github_url>")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeAdd(cmd.Context(), cmd.OutOrStdout(), a, args[0])
	},
}

func executeAdd(ctx context.Context, w io.Writer, a *app.App, ref string) error {
	source, err := fetch.ParseRepoRef(ref)
	if err != nil {
		return err
	}

	result, err := a.Reconciler().AddCustomRepo(ctx, source.Owner, source.Repo)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", source.Key(), err)
	}

	fmt.Fprintf(w, "%s Added custom repository %s (%d skills)\n",
		output.Success(output.SymbolYes), source.Key(), len(result.Skills))
	return nil
}
