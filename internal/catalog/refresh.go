package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 3

// RefreshStats contains statistics about a bulk refresh.
type RefreshStats struct {
	Total     int
	Refreshed []string
	Failed    []string
	Duration  time.Duration
}

// RefreshAll re-fetches every fetched repository, at most
// maxConcurrentFetches at a time. Failures do not stop the others; they are
// returned together.
func (r *Reconciler) RefreshAll(ctx context.Context) (*RefreshStats, error) {
	start := time.Now()

	keys := make([]string, 0)
	for key := range r.stores.Fetched.Load().Repos {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	stats := &RefreshStats{Total: len(keys)}

	var (
		mu     sync.Mutex
		result *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, key := range keys {
		key := key
		owner, repo, ok := splitKey(key)
		if !ok {
			mu.Lock()
			stats.Failed = append(stats.Failed, key)
			result = multierror.Append(result, fmt.Errorf("invalid repository key %q", key))
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			_, err := r.fetcher.Fetch(gctx, owner, repo)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.Error("Failed to refresh repository", err, "repo", key)
				stats.Failed = append(stats.Failed, key)
				result = multierror.Append(result, fmt.Errorf("%s: %w", key, err))
				return nil
			}
			stats.Refreshed = append(stats.Refreshed, key)
			return nil
		})
	}

	_ = g.Wait()

	sort.Strings(stats.Refreshed)
	sort.Strings(stats.Failed)
	stats.Duration = time.Since(start)

	return stats, result.ErrorOrNil()
}

func splitKey(key string) (owner, repo string, ok bool) {
	owner, repo, ok = strings.Cut(key, "/")
	return owner, repo, ok && owner != "" && repo != ""
}
