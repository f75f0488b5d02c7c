package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmayo/fortscan/internal/discover"
	"github.com/ajmayo/fortscan/internal/model"
	"github.com/ajmayo/fortscan/internal/pipeline"
	"github.com/ajmayo/fortscan/internal/store"
)

var (
	scrapeDB      string
	scrapeForce   bool
	scrapeWorkers int
	scrapeNoCache bool
	scrapePages   string
	scrapeSection string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape all state pages into the database",
	Long: `Scrape discovers every state page, fetches each one, extracts the
fort entries, and stores them in SQLite. Pages already scraped
successfully are skipped, so an interrupted run picks up where it
stopped; use --force to re-scrape everything.

Example:
  fortscan scrape
  fortscan scrape --section East
  fortscan scrape --force --workers 8
  fortscan scrape --pages data/discovered_urls.json`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeDB, "db", "", "database path (default: data/forts.db)")
	scrapeCmd.Flags().BoolVar(&scrapeForce, "force", false, "re-scrape pages already logged as successful")
	scrapeCmd.Flags().IntVar(&scrapeWorkers, "workers", 0, "concurrent page workers (default from config)")
	scrapeCmd.Flags().BoolVar(&scrapeNoCache, "no-cache", false, "disable the page cache")
	scrapeCmd.Flags().StringVar(&scrapePages, "pages", "", "use a saved discovery file instead of re-discovering")
	scrapeCmd.Flags().StringVar(&scrapeSection, "section", "", "limit to one section (East or West)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scrapeDB != "" {
		cfg.Storage.Path = scrapeDB
	}
	if scrapeWorkers > 0 {
		cfg.Concurrency.Workers = scrapeWorkers
	}
	if scrapeNoCache {
		cfg.Cache.Enabled = false
	}
	if scrapeSection != "" {
		cfg.Site.Sections = []string{scrapeSection}
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	p := pipeline.New(cfg, st)
	p.Force = scrapeForce

	var pages []model.PageInfo
	if scrapePages != "" {
		pages, err = discover.ReadPages(scrapePages)
		if err != nil {
			return fmt.Errorf("read pages file: %w", err)
		}
	} else {
		d := discover.New(pipeline.NewFetcher(cfg, nil), cfg.Site.BaseURL)
		pages, err = d.DiscoverAll(ctx, cfg.Site.Sections)
		if err != nil {
			return fmt.Errorf("discover pages: %w", err)
		}
	}
	if scrapeSection != "" {
		filtered := pages[:0]
		for _, pg := range pages {
			if pg.Section == scrapeSection {
				filtered = append(filtered, pg)
			}
		}
		pages = filtered
	}

	fmt.Fprintf(os.Stderr, "Scraping %d pages with %d workers...\n", len(pages), cfg.Concurrency.Workers)

	results, sum := p.ScrapeAll(ctx, pages)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "  error: %s: %v\n", r.Page.URL, r.Err)
		}
	}

	fmt.Printf("Done: %d pages, %d skipped, %d errors, %d forts saved\n",
		sum.Pages, sum.Skipped, sum.Errors, sum.Forts)
	if sum.Errors > 0 {
		return fmt.Errorf("%d pages failed", sum.Errors)
	}
	return nil
}
