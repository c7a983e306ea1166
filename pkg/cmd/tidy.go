package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tidyCmd)
}

var tidyCmd = &cobra.Command{
	Use:   "tidy",
	Short: "清理失效的拉取记录与残留的仓库目录",
	Long: `清理失效的拉取记录与残留的仓库目录。

此命令执行三个清理操作：
  1. 移除工作副本已不存在的拉取记录
  2. 删除中断的克隆留下的临时目录
  3. 删除没有拉取记录的孤立工作副本

请勿在拉取进行时运行。

示例:
  skillstudio tidy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeTidy(cmd.Context(), cmd.OutOrStdout(), a)
	},
}

func executeTidy(ctx context.Context, w io.Writer, a *app.App) error {
	fmt.Fprintln(w, "正在清理仓库目录...")

	report, err := a.Reconciler().Tidy(ctx)
	if err != nil {
		return fmt.Errorf("清理失败: %w", err)
	}

	fmt.Fprintln(w, "\n清理完成！")

	if report.StaleFetchedEntries > 0 {
		fmt.Fprintf(w, "• 移除了 %d 个无效的拉取记录\n", report.StaleFetchedEntries)
	}
	if report.TempDirs > 0 {
		fmt.Fprintf(w, "• 删除了 %d 个临时克隆目录\n", report.TempDirs)
	}
	if report.OrphanedWorkingCopies > 0 {
		fmt.Fprintf(w, "• 删除了 %d 个孤立的工作副本\n", report.OrphanedWorkingCopies)
	}
	if report.StaleFetchedEntries == 0 && report.TempDirs == 0 && report.OrphanedWorkingCopies == 0 {
		fmt.Fprintln(w, "• 没有发现需要清理的项目")
	}

	fmt.Fprintf(w, "\n已检查 %d 个仓库\n", report.ReposChecked)
	return nil
}
