package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the weather CLI
type Config struct {
	// Data source URLs
	MetAPIURL     string `env:"MET_API_URL,default=https://api.met.no/weatherapi/locationforecast/2.0/compact"`
	NominatimURL  string `env:"NOMINATIM_URL,default=https://nominatim.openstreetmap.org/search"`
	IPAPIURL      string `env:"IPAPI_URL,default=https://ipapi.co/json/"`
	IPFallbackURL string `env:"IP_API_URL,default=http://ip-api.com/json/"`
	AlertsFeedURL string `env:"ALERTS_FEED_URL,default=https://api.met.no/weatherapi/metalerts/2.0/current.rss"`

	// met.no requires an identifying User-Agent
	UserAgent string `env:"USER_AGENT,default=weathercast/1.0 (educational weather CLI)"`

	// Storage configuration
	DataDir        string `env:"DATA_DIR,default=./data"`
	StorageBackend string `env:"STORAGE_BACKEND,default=json"`
	LocationsPath  string `env:"LOCATIONS_FILE,default=./config/locations.json"`

	// Report publishing (optional GCS archive)
	DeploymentMode  string `env:"DEPLOYMENT_MODE,default=local"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	GCSBucket       string `env:"GCS_BUCKET"`
	GCPProjectID    string `env:"GCP_PROJECT_ID"`

	// OpenAI configuration; briefings are disabled without a key
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4o-mini"`

	// Collection configuration
	MaxWorkers       int `env:"MAX_WORKERS,default=4"`
	MaxForecastHours int `env:"MAX_FORECAST_HOURS,default=168"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option values that envconfig cannot express
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be json or sqlite", c.StorageBackend)
	}

	switch c.DeploymentMode {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("DEPLOYMENT_MODE gcs requires GCS_BUCKET")
		}
	default:
		return fmt.Errorf("invalid DEPLOYMENT_MODE %q: must be local or gcs", c.DeploymentMode)
	}

	if c.MaxWorkers < 1 {
		return fmt.Errorf("MAX_WORKERS must be at least 1, got %d", c.MaxWorkers)
	}
	if c.MaxForecastHours < 1 {
		return fmt.Errorf("MAX_FORECAST_HOURS must be at least 1, got %d", c.MaxForecastHours)
	}

	return nil
}

// BriefingEnabled reports whether an OpenAI key is configured
func (c *Config) BriefingEnabled() bool {
	return c.OpenAIAPIKey != ""
}
