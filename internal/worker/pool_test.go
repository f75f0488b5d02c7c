package worker

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/ajmayo/fortscan/internal/model"
)

func TestPoolRunsAllPages(t *testing.T) {
	var processed atomic.Int64
	pool := NewPool(3, func(ctx context.Context, page model.PageInfo) model.PageResult {
		processed.Add(1)
		return model.PageResult{Page: page, FortsFound: 1}
	})

	pages := []model.PageInfo{
		{URL: "https://example.com/east/me.html", StateCode: "ME"},
		{URL: "https://example.com/east/nh.html", StateCode: "NH"},
		{URL: "https://example.com/east/vt.html", StateCode: "VT"},
		{URL: "https://example.com/east/ma.html", StateCode: "MA"},
	}

	results := pool.Run(context.Background(), pages)
	if len(results) != len(pages) {
		t.Fatalf("expected %d results, got %d", len(pages), len(results))
	}
	if processed.Load() != int64(len(pages)) {
		t.Errorf("expected %d pages processed, got %d", len(pages), processed.Load())
	}

	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Page.StateCode] = true
	}
	for _, p := range pages {
		if !seen[p.StateCode] {
			t.Errorf("missing result for %s", p.StateCode)
		}
	}
}

func TestPoolZeroWorkers(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, page model.PageInfo) model.PageResult {
		return model.PageResult{Page: page}
	})
	results := pool.Run(context.Background(), []model.PageInfo{{URL: "https://example.com/a"}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestPoolCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2, func(ctx context.Context, page model.PageInfo) model.PageResult {
		return model.PageResult{Page: page}
	})

	pages := make([]model.PageInfo, 50)
	results := pool.Run(ctx, pages)
	if len(results) == len(pages) {
		t.Errorf("canceled run should not process every page")
	}
}
