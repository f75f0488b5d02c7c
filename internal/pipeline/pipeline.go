package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/ajmayo/fortscan/internal/cache"
	"github.com/ajmayo/fortscan/internal/model"
	"github.com/ajmayo/fortscan/internal/parse"
	"github.com/ajmayo/fortscan/internal/store"
	"github.com/ajmayo/fortscan/internal/worker"
)

// Pipeline drives the scrape: fetch a state page, extract fort entries,
// persist them, and log the page outcome so interrupted runs resume
// where they stopped.
type Pipeline struct {
	fetcher *Fetcher
	store   *store.Store
	cfg     *model.Config

	// Force re-scrapes pages already logged as successful.
	Force bool
}

func New(cfg *model.Config, st *store.Store) *Pipeline {
	var pageCache cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		pageCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}
	return &Pipeline{
		fetcher: NewFetcher(cfg, pageCache),
		store:   st,
		cfg:     cfg,
	}
}

// ScrapePage processes a single discovered page end to end.
func (p *Pipeline) ScrapePage(ctx context.Context, page model.PageInfo) model.PageResult {
	res := model.PageResult{Page: page}

	if !p.Force {
		status, _, found, err := p.store.ScrapeStatus(ctx, page.URL)
		if err != nil {
			res.Err = err
			return res
		}
		if found && status == "success" {
			res.Skipped = true
			return res
		}
	}

	body, fromCache, err := p.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		res.Err = fmt.Errorf("fetch %s: %w", page.URL, err)
		_ = p.store.LogScrape(ctx, page.URL, "error", 0, err.Error())
		return res
	}

	records := parse.ExtractEntries(body, page.URL)
	for _, rec := range records {
		flat := rec.Flatten(page.StateCode, page.StateName, page.URL, page.Section)
		if _, err := p.store.SaveFort(ctx, flat); err != nil {
			res.Err = fmt.Errorf("save %q: %w", rec.NamePrimary, err)
			_ = p.store.LogScrape(ctx, page.URL, "error", res.FortsFound, err.Error())
			return res
		}
		res.FortsFound++
	}

	if err := p.store.LogScrape(ctx, page.URL, "success", res.FortsFound, ""); err != nil {
		res.Err = err
		return res
	}

	if p.cfg.Output.Verbose {
		src := "net"
		if fromCache {
			src = "cache"
		}
		fmt.Fprintf(os.Stderr, "  %s %s: %d forts (%s)\n",
			page.StateCode, page.Filename, res.FortsFound, src)
	}
	return res
}

// Summary aggregates a batch of page results.
type Summary struct {
	Pages   int
	Skipped int
	Errors  int
	Forts   int
}

// ScrapeAll runs all pages through the worker pool and returns the
// per-page results plus a roll-up.
func (p *Pipeline) ScrapeAll(ctx context.Context, pages []model.PageInfo) ([]model.PageResult, Summary) {
	pool := worker.NewPool(p.cfg.Concurrency.Workers, p.ScrapePage)
	results := pool.Run(ctx, pages)

	var sum Summary
	sum.Pages = len(results)
	for _, r := range results {
		switch {
		case r.Err != nil:
			sum.Errors++
		case r.Skipped:
			sum.Skipped++
		default:
			sum.Forts += r.FortsFound
		}
	}
	return results, sum
}
