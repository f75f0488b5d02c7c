package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajmayo/fortscan/internal/store"
)

var (
	exportDB  string
	exportDir string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database to CSV",
	Long: `Export writes forts.csv and fort_periods.csv to the output
directory for use in spreadsheets or GIS tools.

Example:
  fortscan export
  fortscan export --out /tmp/forts`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDB, "db", "", "database path (default: data/forts.db)")
	exportCmd.Flags().StringVar(&exportDir, "out", "", "output directory (default: data)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportDB != "" {
		cfg.Storage.Path = exportDB
	}
	if exportDir != "" {
		cfg.Output.ExportDir = exportDir
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	forts, periods, err := st.ExportCSV(context.Background(), cfg.Output.ExportDir)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Exported %d forts and %d periods to %s\n", forts, periods, cfg.Output.ExportDir)
	return nil
}
