package cmd

import (
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <skill_id>",
	Short: "显示一个技能的详情及文档内容",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeShow(cmd.OutOrStdout(), a, args[0])
	},
}

func executeShow(w io.Writer, a *app.App, id string) error {
	skill, err := a.Reconciler().FindSkill(id)
	if err != nil {
		return err
	}

	return render(w, skill, func() error {
		fmt.Fprintf(w, "%s %s\n", output.Bold("ID:"), skill.ID)
		fmt.Fprintf(w, "%s %s\n", output.Bold("Name:"), skill.Name)
		fmt.Fprintf(w, "%s %s\n", output.Bold("Description:"), skill.Description)
		fmt.Fprintf(w, "%s %s/%s\n", output.Bold("Repository:"), skill.Owner, skill.Repo)
		fmt.Fprintf(w, "%s %s\n", output.Bold("Path:"), skill.Path)
		fmt.Fprintf(w, "%s %s\n", output.Bold("Installed:"), output.Mark(skill.IsInstalled))
		if skill.Content != nil {
			fmt.Fprintf(w, "\n%s\n", *skill.Content)
		}
		return nil
	})
}
