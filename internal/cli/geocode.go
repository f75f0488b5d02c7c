package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajmayo/fortscan/internal/geocode"
	"github.com/ajmayo/fortscan/internal/store"
)

var (
	geocodeDB    string
	geocodeLimit int
	geocodeStats bool
)

// geocodeCmd represents the geocode command
var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode stored fort locations",
	Long: `Geocode resolves stored location text to coordinates through the
Google Geocoding API, scoping each query to the fort's state. The API
key comes from the config file or the GOOGLE_MAPS_API_KEY environment
variable.

Failed lookups are recorded too, so each location is attempted once.

Example:
  fortscan geocode
  fortscan geocode --limit 100
  fortscan geocode --stats`,
	RunE: runGeocode,
}

func init() {
	rootCmd.AddCommand(geocodeCmd)

	geocodeCmd.Flags().StringVar(&geocodeDB, "db", "", "database path (default: data/forts.db)")
	geocodeCmd.Flags().IntVar(&geocodeLimit, "limit", 0, "max forts to geocode this run (0 for all)")
	geocodeCmd.Flags().BoolVar(&geocodeStats, "stats", false, "print geocoding coverage and exit")
}

func runGeocode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if geocodeDB != "" {
		cfg.Storage.Path = geocodeDB
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	if geocodeStats {
		gs, err := st.GeocodeStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Total forts:  %d\n", gs.TotalForts)
		fmt.Printf("Geocoded:     %d\n", gs.Geocoded)
		fmt.Printf("Pending:      %d\n", gs.Pending)
		if len(gs.ByConfidence) > 0 {
			fmt.Println("\nBy confidence:")
			for _, level := range []string{"exact", "approximate", "locality", "county", "state", "failed"} {
				if n, ok := gs.ByConfidence[level]; ok {
					fmt.Printf("  %-12s %d\n", level, n)
				}
			}
		}
		return nil
	}

	if cfg.Geocode.APIKey == "" {
		return fmt.Errorf("no API key: set GOOGLE_MAPS_API_KEY or geocode.api_key in the config")
	}

	targets, err := st.PendingGeocodes(ctx, geocodeLimit)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("Nothing to geocode")
		return nil
	}

	fmt.Fprintf(os.Stderr, "Geocoding %d forts...\n", len(targets))
	g := geocode.New(cfg.Geocode)

	var done, failed int
	for i, target := range targets {
		res := g.GeocodeFort(ctx, target.LocationText, target.StateFullName)
		if err := st.UpdateGeocode(ctx, target.FortID, res.Lat, res.Lon,
			res.Confidence, res.Source, res.Query); err != nil {
			return fmt.Errorf("update fort %d: %w", target.FortID, err)
		}
		if res.Confidence == "failed" {
			failed++
		} else {
			done++
		}
		if cfg.Output.Verbose || (i+1)%50 == 0 {
			fmt.Fprintf(os.Stderr, "  %d/%d\n", i+1, len(targets))
		}
	}

	fmt.Printf("Geocoded %d forts, %d failed\n", done, failed)
	return nil
}
