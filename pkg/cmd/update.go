package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "重新拉取所有已拉取的仓库",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeUpdate(cmd.Context(), cmd.OutOrStdout(), a)
	},
}

func executeUpdate(ctx context.Context, w io.Writer, a *app.App) error {
	stats, refreshErr := a.Reconciler().RefreshAll(ctx)

	if stats.Total == 0 {
		fmt.Fprintln(w, "No repositories fetched yet.")
		return nil
	}

	for _, key := range stats.Refreshed {
		fmt.Fprintf(w, "%s %s\n", output.Success(output.SymbolYes), key)
	}
	for _, key := range stats.Failed {
		fmt.Fprintf(w, "%s %s\n", output.Error("✗"), key)
	}
	fmt.Fprintf(w, "\nRefreshed %d/%d repositories in %s\n", len(stats.Refreshed), stats.Total, stats.Duration.Round(time.Millisecond))

	if refreshErr != nil {
		return fmt.Errorf("some repositories failed to refresh: %w", refreshErr)
	}
	return nil
}
