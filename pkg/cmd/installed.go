package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/watch"
	"github.com/spf13/cobra"
)

var installedWatch bool

func init() {
	installedCmd.Flags().BoolVarP(&installedWatch, "watch", "w", false, "目录变化时重新输出")
	rootCmd.AddCommand(installedCmd)
}

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "列出已安装的技能名称",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if err := executeInstalled(w, a); err != nil {
			return err
		}
		if !installedWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchInstalled(ctx, w, a)
	},
}

func executeInstalled(w io.Writer, a *app.App) error {
	names, err := a.Reconciler().InstalledSkills()
	if err != nil {
		return err
	}

	return render(w, names, func() error {
		if len(names) == 0 {
			fmt.Fprintf(w, "No skills installed in %s\n", a.Installer().InstalledDir())
			return nil
		}
		table := output.NewTable(w, "Name")
		for _, name := range names {
			if err := table.Append(name); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nTotal: %d skills\n", len(names))
		return nil
	})
}

// watchInstalled re-prints the listing whenever the installed directory
// changes, until ctx is done.
func watchInstalled(ctx context.Context, w io.Writer, a *app.App) error {
	dir := a.Installer().InstalledDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create installed directory: %w", err)
	}

	fmt.Fprintln(w, output.Dim(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir)))
	return watch.Dir(ctx, dir, watch.DefaultDebounce, a.Logger(), func() {
		fmt.Fprintln(w)
		if err := executeInstalled(w, a); err != nil {
			a.Logger().Error("Failed to list installed skills", err)
		}
	})
}
