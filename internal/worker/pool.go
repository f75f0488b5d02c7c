package worker

import (
	"context"
	"sync"

	"github.com/ajmayo/fortscan/internal/model"
)

// PageFunc processes one discovered page and reports the outcome.
type PageFunc func(ctx context.Context, page model.PageInfo) model.PageResult

// Pool fans page jobs out over a fixed number of goroutines. The source
// site is small enough that results fit in memory, so Run collects them
// all before returning.
type Pool struct {
	workers int
	fn      PageFunc
}

// NewPool creates a pool. workers <= 0 means a single worker.
func NewPool(workers int, fn PageFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, fn: fn}
}

// Run processes all pages and returns one result per page. Order of
// results follows completion, not submission. A canceled context stops
// feeding new pages; in-flight pages still report their result.
func (p *Pool) Run(ctx context.Context, pages []model.PageInfo) []model.PageResult {
	jobs := make(chan model.PageInfo)
	results := make(chan model.PageResult, len(pages))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				results <- p.fn(ctx, page)
			}
		}()
	}

feed:
	for _, page := range pages {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- page:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]model.PageResult, 0, len(pages))
	for r := range results {
		out = append(out, r)
	}
	return out
}
