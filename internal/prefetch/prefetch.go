// Package prefetch warms the response cache for the catalog pages.
package prefetch

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/brawlhub/internal/api"
	"github.com/nikbrunner/brawlhub/internal/colorid"
)

// Status is the outcome of fetching one target.
type Status int

const (
	Fetched Status = iota
	Failed
)

func (s Status) String() string {
	if s == Fetched {
		return "fetched"
	}
	return "failed"
}

// Target is one API path to warm.
type Target struct {
	Label string
	Path  string
}

// Result holds the outcome for a single target.
type Result struct {
	Target Target
	Status Status
	Error  string // normalized error for failed targets
}

// FetchFunc fetches path and stores it. api.Client.Refresh fits.
type FetchFunc func(ctx context.Context, path string) error

// ProgressFunc is called after each target finishes.
// completed is the number of targets done so far, total is the total count.
type ProgressFunc func(completed, total int)

// Warm fetches every target with at most concurrency requests in flight.
// Results are in target order. Cancelling ctx marks unfinished targets
// as failed.
func Warm(ctx context.Context, fetch FetchFunc, targets []Target, concurrency int, onProgress ProgressFunc) []Result {
	if len(targets) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(targets))

	var progressMu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, target := range targets {
		g.Go(func() error {
			results[i] = warmOne(gctx, fetch, target)

			if onProgress != nil {
				progressMu.Lock()
				completed++
				onProgress(completed, len(targets))
				progressMu.Unlock()
			}
			// Failures are per target; never cancel the others.
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func warmOne(ctx context.Context, fetch FetchFunc, target Target) Result {
	result := Result{Target: target}
	if err := ctx.Err(); err != nil {
		result.Status = Failed
		result.Error = normalizeError(err.Error())
		return result
	}
	if err := fetch(ctx, target.Path); err != nil {
		result.Status = Failed
		result.Error = normalizeError(err.Error())
		return result
	}
	result.Status = Fetched
	return result
}

// CatalogTargets lists the commander and top card pages for every catalog
// identity, plus the two unfiltered pages.
func CatalogTargets(catalog colorid.Catalog) []Target {
	targets := make([]Target, 0, 2*(len(catalog)+1))
	targets = append(targets,
		Target{Label: "Top commanders", Path: api.CommandersPath("")},
		Target{Label: "Top cards", Path: api.TopCardsPath("")},
	)
	for _, combo := range catalog {
		targets = append(targets,
			Target{Label: combo.Title + " commanders", Path: api.CommandersPath(combo.ColorIdentity)},
			Target{Label: combo.Title + " cards", Path: api.TopCardsPath(combo.ColorIdentity)},
		)
	}
	return targets
}

// Summary counts results by status.
func Summary(results []Result) (fetched, failed int) {
	for _, r := range results {
		if r.Status == Fetched {
			fetched++
		} else {
			failed++
		}
	}
	return fetched, failed
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "status 404"):
		return "Not found"
	case strings.Contains(lower, "invalid api response"):
		return "Invalid response"
	default:
		return errStr
	}
}
