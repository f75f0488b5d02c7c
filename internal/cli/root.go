package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajmayo/fortscan/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fortscan",
	Short: "Fortscan - historic fort records from North American Forts",
	Long: `Fortscan scrapes northamericanforts.com, a large hand-maintained
catalog of historic fortifications, and turns its free-form state pages
into structured records: names, alternate names, occupation periods,
nationalities, locations, and coordinates.

The site's pages are 1990s-era HTML with no consistent markup, so
extraction is best-effort by design: unparseable fragments are kept
verbatim rather than dropped.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fortscan v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.fortscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".fortscan"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("FORTSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: defaults, then config
// file and FORTSCAN_* env vars, then per-command flags on top.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".fortscan", "cache")
		}
	}
	if cfg.Geocode.APIKey == "" {
		cfg.Geocode.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg, nil
}
