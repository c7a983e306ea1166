package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/smy-101/skillstudio/internal/app"
	"github.com/smy-101/skillstudio/internal/install"
	"github.com/smy-101/skillstudio/internal/output"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/cobra"
)

var (
	installMethod string
	installName   string
)

func init() {
	installCmd.Flags().StringVarP(&installMethod, "method", "m", "", "安装方式: copy 或 npx (默认读取设置)")
	installCmd.Flags().StringVarP(&installName, "name", "n", "", "安装目录名称 (默认技能名称)")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <skill_id>",
	Short: "安装一个技能",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return executeInstall(cmd.Context(), cmd.OutOrStdout(), a, args[0], installMethod, installName)
	},
}

func executeInstall(ctx context.Context, w io.Writer, a *app.App, id, method, name string) error {
	skill, err := a.Reconciler().FindSkill(id)
	if err != nil {
		return err
	}

	m := types.InstallMethod(method)
	if m == "" {
		settings, err := a.Settings().Load()
		if err != nil {
			return err
		}
		m = settings.InstallMethod
	}
	if name == "" {
		name = installNameFor(skill)
	}

	result, err := a.Installer().Install(ctx, install.Request{
		Owner:      skill.Owner,
		Repo:       skill.Repo,
		SkillName:  name,
		SkillPath:  skill.Path,
		SkillsPath: skill.SkillsPath,
		Method:     m,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n", output.Success(output.SymbolYes), result)
	return nil
}

// installNameFor prefers the skill's display name and falls back to its
// folder when the name cannot be a directory entry.
func installNameFor(skill *types.Skill) string {
	if install.ValidateName(skill.Name) == nil {
		return skill.Name
	}
	return skill.Path
}
