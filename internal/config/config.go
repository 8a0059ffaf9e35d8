package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Pricing PricingConfig `yaml:"pricing"`
	Brand   BrandConfig   `yaml:"brand"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with environment override
func (c ServerConfig) GetHost() string {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DataConfig holds synthetic dataset generation and storage settings
type DataConfig struct {
	Dir           string `yaml:"dir"`            // Directory for the generated CSV artifacts
	CustomerCount int    `yaml:"customer_count"` // Number of customers per generation run
	UsageMonths   int    `yaml:"usage_months"`   // Trailing billing-month window
	Seed          int64  `yaml:"seed"`           // Seed for the generator's random source
	ReferenceDate string `yaml:"reference_date"` // Format: "2006-01-02" — anchors all date windows
}

// Reference parses the configured reference date. Generated date windows
// (billing months, ticket dates, intervention dates) are anchored here rather
// than at wall-clock time, so a fixed seed reproduces the exact same rows.
func (c DataConfig) Reference() (time.Time, error) {
	return time.Parse("2006-01-02", c.ReferenceDate)
}

// PricingConfig holds the economic constants for the pricing simulator
type PricingConfig struct {
	FixedMonthlyCost    float64 `yaml:"fixed_monthly_cost"`     // Platform cost per month regardless of subscribers
	VariableCostPerUser float64 `yaml:"variable_cost_per_user"` // Marginal cost per subscriber per month
	MarketMultiplier    float64 `yaml:"market_multiplier"`      // Scales the sample up to the addressable market
	MinPrice            float64 `yaml:"min_price"`              // Lower bound for the price selector
	MaxPrice            float64 `yaml:"max_price"`              // Upper bound for the price selector
}

// BrandConfig points at the brand theming file consumed by the dashboard UI
type BrandConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, for callers
// that run without a config file (tests, the generate CLI).
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "./data"
	}
	if cfg.Data.CustomerCount == 0 {
		cfg.Data.CustomerCount = 5000
	}
	if cfg.Data.UsageMonths == 0 {
		cfg.Data.UsageMonths = 12
	}
	if cfg.Data.Seed == 0 {
		cfg.Data.Seed = 42
	}
	if cfg.Data.ReferenceDate == "" {
		cfg.Data.ReferenceDate = "2025-01-01"
	}
	if cfg.Pricing.FixedMonthlyCost == 0 {
		cfg.Pricing.FixedMonthlyCost = 15000
	}
	if cfg.Pricing.VariableCostPerUser == 0 {
		cfg.Pricing.VariableCostPerUser = 2.25
	}
	if cfg.Pricing.MarketMultiplier == 0 {
		cfg.Pricing.MarketMultiplier = 50
	}
	if cfg.Pricing.MinPrice == 0 {
		cfg.Pricing.MinPrice = 1.0
	}
	if cfg.Pricing.MaxPrice == 0 {
		cfg.Pricing.MaxPrice = 20.0
	}
	if cfg.Brand.Path == "" {
		cfg.Brand.Path = "config/brand.yaml"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so local overrides can live in .env and real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if dir := os.Getenv("PULSE_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if seed := os.Getenv("PULSE_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Data.Seed = v
		}
	}
	if count := os.Getenv("PULSE_CUSTOMER_COUNT"); count != "" {
		if v, err := strconv.Atoi(count); err == nil {
			cfg.Data.CustomerCount = v
		}
	}
	if ref := os.Getenv("PULSE_REFERENCE_DATE"); ref != "" {
		cfg.Data.ReferenceDate = ref
	}
	if brandPath := os.Getenv("PULSE_BRAND_PATH"); brandPath != "" {
		cfg.Brand.Path = brandPath
	}
	if port := os.Getenv("PORT"); port != "" {
		if v, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = v
		}
	}

	return cfg, nil
}
