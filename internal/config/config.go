package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "enmon/internal/errors"
)

// DefaultCostPerKWh is the fallback energy price when no pricing is
// configured, in currency units per kWh.
const DefaultCostPerKWh = 0.15

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
	Pricing PricingConfig `yaml:"pricing" envconfig:"PRICING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/enmon.log"`
}

// IngestConfig contains dataset loading configuration
type IngestConfig struct {
	// MaxDiagnostics caps how many row-parse failures are kept and logged
	// per load; the rest are counted but dropped silently.
	MaxDiagnostics int `yaml:"max_diagnostics" envconfig:"MAX_DIAGNOSTICS" default:"5"`
}

// PricingConfig contains energy cost configuration
type PricingConfig struct {
	// CostPerKWh is the price applied by monthly cost reports, in
	// currency units per kWh.
	CostPerKWh float64 `yaml:"cost_per_kwh" envconfig:"COST_PER_KWH" default:"0.15"`
}

// ExportConfig contains file export configuration
type ExportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
}

// Load loads configuration from environment variables and, when present,
// an optional YAML file. Environment variables take precedence.
func Load() (*Config, error) {
	return LoadWithFile(getConfigFilePath())
}

// LoadWithFile loads configuration using the given YAML file path.
func LoadWithFile(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	// Environment variables override file values; envconfig also applies
	// struct defaults to any field still at its zero value.
	if err := envconfig.Process("ENMON", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Ingest.MaxDiagnostics < 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("ingest.max_diagnostics must not be negative, got %d", c.Ingest.MaxDiagnostics))
	}
	if c.Pricing.CostPerKWh < 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("pricing.cost_per_kwh must not be negative, got %f", c.Pricing.CostPerKWh))
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return apperrors.NewValidationError(
			fmt.Sprintf("logging.output must be console, file or both, got %q", c.Logging.Output))
	}
	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// getConfigFilePath returns the config file location, overridable via
// ENMON_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("ENMON_CONFIG_FILE"); path != "" {
		return path
	}
	return "enmon.yaml"
}
