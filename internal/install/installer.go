// Package install copies skills into the installed-skills directory, or
// delegates to the external package manager, and removes them again.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/smy-101/skillstudio/internal/constants"
	"github.com/smy-101/skillstudio/internal/logging"
	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// Request describes one skill installation.
type Request struct {
	Owner      string
	Repo       string
	SkillName  string
	SkillPath  string
	SkillsPath string
	Method     types.InstallMethod
}

// Installer 技能安装器
type Installer struct {
	fs           afero.Fs
	reposDir     string
	installedDir string
	runner       Runner
	goos         string
	logger       logging.Logger
}

func NewInstaller(fsys afero.Fs, reposDir, installedDir string, runner Runner) *Installer {
	return &Installer{
		fs:           fsys,
		reposDir:     reposDir,
		installedDir: installedDir,
		runner:       runner,
		goos:         runtime.GOOS,
		logger:       logging.NoOpLogger{},
	}
}

func (i *Installer) SetLogger(logger logging.Logger) {
	i.logger = logger
}

// InstalledDir returns the installed-skills directory.
func (i *Installer) InstalledDir() string {
	return i.installedDir
}

// InstalledPath returns where a skill named name is installed.
func (i *Installer) InstalledPath(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(i.installedDir, name)
	if !within(i.installedDir, path) {
		return "", skillerr.Parse(fmt.Sprintf("skill name %q escapes the installed directory", name), nil)
	}
	return path, nil
}

// Install installs one skill and returns a human-readable result. For npx
// the result is the installer's stdout.
func (i *Installer) Install(ctx context.Context, req Request) (string, error) {
	if err := ValidateName(req.SkillName); err != nil {
		return "", err
	}

	switch req.Method {
	case types.InstallMethodCopy, "":
		return i.installCopy(req)
	case types.InstallMethodNpx:
		return i.installNpx(ctx, req)
	default:
		return "", skillerr.Parse(fmt.Sprintf("unknown install method %q", req.Method), nil)
	}
}

// SourcePath returns the directory a copy install reads from.
func (i *Installer) SourcePath(req Request) (string, error) {
	if err := validateRelPath("skill path", req.SkillPath); err != nil {
		return "", err
	}
	repoDir := filepath.Join(i.reposDir, req.Owner, req.Repo)
	if req.SkillsPath == "" || req.SkillsPath == constants.RootSkillsPath {
		return filepath.Join(repoDir, req.SkillPath), nil
	}
	if err := validateRelPath("skills path", req.SkillsPath); err != nil {
		return "", err
	}
	return filepath.Join(repoDir, req.SkillsPath, req.SkillPath), nil
}

func (i *Installer) installCopy(req Request) (string, error) {
	src, err := i.SourcePath(req)
	if err != nil {
		return "", err
	}

	info, err := i.fs.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", skillerr.NotFound(fmt.Sprintf("source path does not exist: %s", src), err)
		}
		return "", skillerr.IO("failed to read skill source", err)
	}
	if !info.IsDir() {
		return "", skillerr.NotFound(fmt.Sprintf("source path is not a directory: %s", src), nil)
	}

	dest, err := i.InstalledPath(req.SkillName)
	if err != nil {
		return "", err
	}

	if err := i.fs.MkdirAll(i.installedDir, 0o755); err != nil {
		return "", skillerr.IO("failed to create installed skills directory", err)
	}

	if err := copyDir(i.fs, src, dest); err != nil {
		return "", skillerr.IO("failed to copy skill", err)
	}

	i.logger.Info("Installed skill", "name", req.SkillName, "source", src, "dest", dest)
	return fmt.Sprintf("Skill '%s' installed via direct copy", req.SkillName), nil
}

func (i *Installer) installNpx(ctx context.Context, req Request) (string, error) {
	args := []string{"skills", "add", types.RepoKey(req.Owner, req.Repo), "--skill=" + req.SkillName}
	i.logger.Debug("Running npx", "args", strings.Join(args, " "))

	stdout, stderr, err := i.runner.Run(ctx, "npx", args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return "", skillerr.Process(msg, err)
	}
	return string(stdout), nil
}

// copyDir copies src into dst recursively, overwriting files that already
// exist in dst.
func copyDir(fsys afero.Fs, src, dst string) error {
	if err := fsys.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fsys, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := fsys.Stat(srcPath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := copyDir(fsys, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(fsys, srcPath, dstPath, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(fsys afero.Fs, src, dst string, perm os.FileMode) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Uninstall removes whatever is installed under name. A symlink is removed
// itself, never its target. Nothing installed is not an error.
func (i *Installer) Uninstall(name string) error {
	path, err := i.InstalledPath(name)
	if err != nil {
		return err
	}

	info, err := i.lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return skillerr.IO("failed to inspect installed skill", err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		err = i.fs.Remove(path)
	case info.IsDir():
		err = i.fs.RemoveAll(path)
	default:
		err = i.fs.Remove(path)
	}
	if err != nil {
		return skillerr.IO(fmt.Sprintf("failed to remove %s", path), err)
	}

	i.logger.Info("Uninstalled skill", "name", name)
	return nil
}

func (i *Installer) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := i.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return i.fs.Stat(path)
}

// Reveal opens the OS file manager at an installed skill.
func (i *Installer) Reveal(ctx context.Context, name string) error {
	path, err := i.InstalledPath(name)
	if err != nil {
		return err
	}
	if _, err := i.lstat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return skillerr.NotFound(fmt.Sprintf("skill folder not found: %s", name), err)
		}
		return skillerr.IO("failed to inspect installed skill", err)
	}

	bin, args := revealCommand(i.goos, path)
	if err := i.runner.Start(ctx, bin, args...); err != nil {
		return skillerr.Process(fmt.Sprintf("failed to open file manager with %s", bin), err)
	}
	return nil
}

func revealCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{"-R", path}
	case "windows":
		return "explorer", []string{"/select,", path}
	default:
		return "xdg-open", []string{filepath.Dir(path)}
	}
}
