package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
	"github.com/spf13/afero"
)

// TidyReport summarizes a tidy run.
type TidyReport struct {
	// StaleFetchedEntries counts fetched records whose working copy is gone.
	StaleFetchedEntries int
	// OrphanedWorkingCopies counts working copies without a fetched record.
	OrphanedWorkingCopies int
	// TempDirs counts leftover clone directories.
	TempDirs int
	// ReposChecked is the number of working copies examined.
	ReposChecked int
}

// Tidy restores the rule that a repository has a fetched record exactly
// when it has a working copy. Run it while no fetch is in progress.
// Nothing is touched when the fetched record exists but cannot be read.
func (r *Reconciler) Tidy(ctx context.Context) (*TidyReport, error) {
	report := &TidyReport{}

	recorded, err := r.stores.Fetched.LoadChecked()
	if err != nil {
		return report, err
	}

	for key := range recorded.Repos {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		owner, repo, ok := splitKey(key)
		if ok {
			if exists, _ := afero.DirExists(r.fs, r.scanner.RepoDir(owner, repo)); exists {
				continue
			}
		}
		if err := r.stores.Fetched.Remove(key); err != nil {
			return report, skillerr.IO("failed to update fetched repositories", err)
		}
		r.logger.Info("Removed stale fetched entry", "repo", key)
		report.StaleFetchedEntries++
	}

	if err := r.clearStaging(report); err != nil {
		return report, err
	}

	fetched, err := r.stores.Fetched.LoadChecked()
	if err != nil {
		return report, err
	}
	reposDir := r.scanner.ReposDir()

	owners, err := afero.ReadDir(r.fs, reposDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return report, nil
		}
		return report, skillerr.IO("failed to read repositories directory", err)
	}

	for _, owner := range owners {
		if !owner.IsDir() {
			continue
		}
		repos, err := afero.ReadDir(r.fs, filepath.Join(reposDir, owner.Name()))
		if err != nil {
			return report, skillerr.IO("failed to read repositories directory", err)
		}

		for _, repo := range repos {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if !repo.IsDir() {
				continue
			}

			report.ReposChecked++
			key := types.RepoKey(owner.Name(), repo.Name())
			if _, ok := fetched.Repos[key]; ok {
				continue
			}
			if err := r.fetcher.RemoveWorkingCopy(owner.Name(), repo.Name()); err != nil {
				return report, err
			}
			r.logger.Info("Removed orphaned working copy", "repo", key)
			report.OrphanedWorkingCopies++
		}
	}

	return report, nil
}

// clearStaging removes clones left behind by interrupted fetches.
func (r *Reconciler) clearStaging(report *TidyReport) error {
	staging := r.fetcher.StagingDir()
	entries, err := afero.ReadDir(r.fs, staging)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return skillerr.IO("failed to read staging directory", err)
	}

	for _, entry := range entries {
		if err := r.fs.RemoveAll(filepath.Join(staging, entry.Name())); err != nil {
			return skillerr.IO("failed to remove temporary clone", err)
		}
		report.TempDirs++
	}
	return nil
}
