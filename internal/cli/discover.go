package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmayo/fortscan/internal/discover"
	"github.com/ajmayo/fortscan/internal/pipeline"
)

var discoverOut string

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover state pages from the section indexes",
	Long: `Discover walks the configured section indexes (East, West) and
lists every linked state page, including subdivision pages like
ca-central.html and continuation pages like ak2.html.

Example:
  fortscan discover
  fortscan discover --out data/discovered_urls.json`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().StringVar(&discoverOut, "out", "", "save discovered pages as JSON")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := discover.New(pipeline.NewFetcher(cfg, nil), cfg.Site.BaseURL)
	pages, err := d.DiscoverAll(context.Background(), cfg.Site.Sections)
	if err != nil {
		return fmt.Errorf("discover pages: %w", err)
	}

	fmt.Printf("Discovered %d pages\n\n", len(pages))
	for _, section := range cfg.Site.Sections {
		n := 0
		for _, p := range pages {
			if p.Section == section {
				n++
			}
		}
		fmt.Printf("%s (%d pages):\n", section, n)
		for _, p := range pages {
			if p.Section == section {
				fmt.Printf("  %-20s -> %s\n", p.Filename, p.StateName)
			}
		}
		fmt.Println()
	}

	if discoverOut != "" {
		if err := discover.WritePages(pages, discoverOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", discoverOut)
	}
	return nil
}
