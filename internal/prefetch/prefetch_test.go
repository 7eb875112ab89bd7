package prefetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/brawlhub/internal/colorid"
)

func TestWarm_Empty(t *testing.T) {
	results := Warm(context.Background(), nil, nil, 4, nil)
	assert.Assert(t, results == nil)
}

func TestWarm_ResultsInTargetOrder(t *testing.T) {
	targets := []Target{
		{Label: "a", Path: "/commanders/w"},
		{Label: "b", Path: "/commanders/missing"},
		{Label: "c", Path: "/top_cards/u"},
	}
	fetch := func(_ context.Context, path string) error {
		if path == "/commanders/missing" {
			return errors.New("unexpected API status: GET /commanders/missing: status 404")
		}
		return nil
	}

	results := Warm(context.Background(), fetch, targets, 2, nil)

	assert.Equal(t, len(results), 3)
	assert.Equal(t, results[0].Status, Fetched)
	assert.Equal(t, results[1].Status, Failed)
	assert.Equal(t, results[1].Error, "Not found")
	assert.Equal(t, results[2].Target.Label, "c")

	fetched, failed := Summary(results)
	assert.Equal(t, fetched, 2)
	assert.Equal(t, failed, 1)
}

func TestWarm_BoundsConcurrency(t *testing.T) {
	var inFlight, peak int32
	release := make(chan struct{})
	var once sync.Once

	fetch := func(_ context.Context, _ string) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		if n == 2 {
			once.Do(func() { close(release) })
		}
		<-release
		atomic.AddInt32(&inFlight, -1)
		return nil
	}

	targets := CatalogTargets(colorid.DefaultCatalog())[:8]
	Warm(context.Background(), fetch, targets, 2, nil)

	assert.Equal(t, atomic.LoadInt32(&peak), int32(2))
}

func TestWarm_ReportsProgress(t *testing.T) {
	var calls, totals []int
	var mu sync.Mutex
	progress := func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, completed)
		totals = append(totals, total)
	}
	targets := CatalogTargets(colorid.DefaultCatalog())[:4]

	Warm(context.Background(), func(context.Context, string) error { return nil }, targets, 3, progress)

	assert.DeepEqual(t, calls, []int{1, 2, 3, 4})
	assert.DeepEqual(t, totals, []int{4, 4, 4, 4})
}

func TestWarm_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var called int32

	results := Warm(ctx, func(context.Context, string) error {
		atomic.AddInt32(&called, 1)
		return nil
	}, CatalogTargets(colorid.DefaultCatalog())[:3], 1, nil)

	assert.Equal(t, atomic.LoadInt32(&called), int32(0))
	for _, r := range results {
		assert.Equal(t, r.Status, Failed)
		assert.Equal(t, r.Error, "Cancelled")
	}
}

func TestCatalogTargets(t *testing.T) {
	targets := CatalogTargets(colorid.DefaultCatalog())

	assert.Equal(t, len(targets), 66)
	assert.Equal(t, targets[0].Path, "/commanders/")
	assert.Equal(t, targets[1].Path, "/top_cards")
	assert.Equal(t, targets[2], Target{Label: "Mono-White commanders", Path: "/commanders/w"})
	assert.Equal(t, targets[len(targets)-1].Path, "/top_cards/colorless")
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dial tcp: lookup api: no such host", "DNS failure"},
		{"context deadline exceeded", "Timeout"},
		{"dial tcp 127.0.0.1:3030: connect: connection refused", "Connection refused"},
		{"something odd", "something odd"},
	}
	for _, tt := range tests {
		assert.Equal(t, normalizeError(tt.in), tt.want)
	}
}
