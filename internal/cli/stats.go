package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajmayo/fortscan/internal/store"
)

var statsDB string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print database statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDB, "db", "", "database path (default: data/forts.db)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if statsDB != "" {
		cfg.Storage.Path = statsDB
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Forts:          %d\n", stats.TotalForts)
	fmt.Printf("Periods:        %d\n", stats.TotalPeriods)
	fmt.Printf("Pages scraped:  %d\n", stats.PagesScraped)

	if len(stats.FortsByState) > 0 {
		fmt.Println("\nForts by state:")
		for _, sc := range stats.FortsByState {
			fmt.Printf("  %-4s %d\n", sc.State, sc.Count)
		}
	}
	return nil
}
