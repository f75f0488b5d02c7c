package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajmayo/fortscan/internal/parse"
	"github.com/ajmayo/fortscan/internal/pipeline"
)

var parseLimit int

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Parse a single page and print the extracted entries",
	Long: `Parse fetches one state page and prints what the extractor finds,
without touching the database. Useful for checking how a page's
layout is handled before a full scrape.

Example:
  fortscan parse https://www.northamericanforts.com/East/me.html
  fortscan parse https://www.northamericanforts.com/West/tx-south.html --limit 25`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().IntVar(&parseLimit, "limit", 10, "max entries to print (0 for all)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f := pipeline.NewFetcher(cfg, nil)
	body, _, err := f.Fetch(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("fetch page: %w", err)
	}

	entries := parse.ExtractEntries(body, args[0])
	fmt.Printf("Extracted %d entries\n\n", len(entries))

	shown := len(entries)
	if parseLimit > 0 && shown > parseLimit {
		shown = parseLimit
	}
	for i := 0; i < shown; i++ {
		e := entries[i]
		fmt.Printf("%d. %s [%s]\n", i+1, e.NamePrimary, e.FortType)
		if e.DatesRaw != "" {
			fmt.Printf("   dates:     %s\n", e.DatesRaw)
		}
		if e.LocationText != "" {
			fmt.Printf("   location:  %s\n", e.LocationText)
		}
		if len(e.AltNames) > 0 {
			fmt.Printf("   aka:       %s\n", strings.Join(e.AltNames, ", "))
		}
		if len(e.Nationalities) > 0 {
			fmt.Printf("   nations:   %s\n", strings.Join(e.Nationalities, ", "))
		}
		if e.DescriptionRaw != "" {
			desc := e.DescriptionRaw
			if len(desc) > 120 {
				desc = desc[:120] + "..."
			}
			fmt.Printf("   desc:      %s\n", desc)
		}
		fmt.Println()
	}
	if shown < len(entries) {
		fmt.Printf("... and %d more (use --limit 0 to show all)\n", len(entries)-shown)
	}
	return nil
}
