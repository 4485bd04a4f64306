// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Census   CensusConfig   `yaml:"census" mapstructure:"census"`
	Scrape   ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Sites    SitesConfig    `yaml:"sites" mapstructure:"sites"`
	Columns  ColumnsConfig  `yaml:"columns" mapstructure:"columns"`
	Sentinel string         `yaml:"sentinel" mapstructure:"sentinel"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// CensusConfig configures the Census geocoder client.
type CensusConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	DelaySecs   float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CachePath   string  `yaml:"cache_path" mapstructure:"cache_path"`
}

// ScrapeConfig configures the county-site owner lookup behavior.
type ScrapeConfig struct {
	DelaySecs   float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	WaitSecs    int     `yaml:"wait_secs" mapstructure:"wait_secs"`
	Headless    bool    `yaml:"headless" mapstructure:"headless"`
}

// SitesConfig holds per-county property-record site URLs.
type SitesConfig struct {
	FultonURL string `yaml:"fulton_url" mapstructure:"fulton_url"`
	DekalbURL string `yaml:"dekalb_url" mapstructure:"dekalb_url"`
}

// ColumnsConfig maps logical fields to table column names.
type ColumnsConfig struct {
	Street string `yaml:"street" mapstructure:"street"`
	City   string `yaml:"city" mapstructure:"city"`
	State  string `yaml:"state" mapstructure:"state"`
	Zip    string `yaml:"zip" mapstructure:"zip"`
	County string `yaml:"county" mapstructure:"county"`
	Owner  string `yaml:"owner" mapstructure:"owner"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config file, and environment.
func Load() (*Config, error) {
	// .env is optional; real env vars win over file entries.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARCEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("census.base_url", "https://geocoding.geo.census.gov/geocoder/geographies/address")
	v.SetDefault("census.delay_secs", 0.5)
	v.SetDefault("census.timeout_secs", 10)
	v.SetDefault("scrape.delay_secs", 0.5)
	v.SetDefault("scrape.timeout_secs", 30)
	v.SetDefault("scrape.wait_secs", 10)
	v.SetDefault("scrape.headless", true)
	v.SetDefault("columns.street", "StreetAddress")
	v.SetDefault("columns.city", "City")
	v.SetDefault("columns.state", "State")
	v.SetDefault("columns.zip", "Zipcode")
	v.SetDefault("columns.county", "CountyName")
	v.SetDefault("columns.owner", "OwnerName")
	v.SetDefault("sentinel", "UNKNOWN")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Census.BaseURL) == "" {
		return eris.New("config: census.base_url is required")
	}
	if c.Census.DelaySecs < 0 {
		return eris.Errorf("config: census.delay_secs must be non-negative, got %v", c.Census.DelaySecs)
	}
	if c.Scrape.DelaySecs < 0 {
		return eris.Errorf("config: scrape.delay_secs must be non-negative, got %v", c.Scrape.DelaySecs)
	}
	if strings.TrimSpace(c.Sentinel) == "" {
		return eris.New("config: sentinel is required")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
