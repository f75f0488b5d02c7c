package model

import "time"

// Config holds the full runtime configuration. Values are resolved by the
// CLI layer: flags > FORTSCAN_* env vars > config file > defaults.
type Config struct {
	Site         SiteConfig         `yaml:"site" mapstructure:"site"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Storage      StorageConfig      `yaml:"storage" mapstructure:"storage"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Geocode      GeocodeConfig      `yaml:"geocode" mapstructure:"geocode"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// SiteConfig identifies the source site and its sections.
type SiteConfig struct {
	BaseURL  string   `yaml:"base_url" mapstructure:"base_url"`
	Sections []string `yaml:"sections" mapstructure:"sections"`
}

// HTTPConfig controls the fetching client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	CheckRobots  bool          `yaml:"check_robots" mapstructure:"check_robots"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig controls the layered page cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ConcurrencyConfig sizes the page worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig keeps the scraper polite. Delay is applied on top of
// the per-domain token bucket, matching the source site's expectations.
type RateLimitingConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	Delay             time.Duration `yaml:"delay" mapstructure:"delay"`
}

// GeocodeConfig controls the Google Geocoding client.
type GeocodeConfig struct {
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Delay    time.Duration `yaml:"delay" mapstructure:"delay"`
}

// OutputConfig controls CLI verbosity and export paths.
type OutputConfig struct {
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
	ExportDir string `yaml:"export_dir" mapstructure:"export_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:  "https://www.northamericanforts.com",
			Sections: []string{"East", "West"},
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "fortscan/1.0 (+https://github.com/ajmayo/fortscan)",
			MaxBodyBytes: 2_000_000,
			CheckRobots:  true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.fortscan/cache by the CLI
			TTL:     24 * time.Hour,
		},
		Storage: StorageConfig{
			Path: "data/forts.db",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1.0,
			BurstSize:         1,
			Delay:             time.Second,
		},
		Geocode: GeocodeConfig{
			Endpoint: "https://maps.googleapis.com/maps/api/geocode/json",
			Delay:    50 * time.Millisecond,
		},
		Output: OutputConfig{
			ExportDir: "data",
		},
	}
}
