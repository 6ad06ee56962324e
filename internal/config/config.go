package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gopaired/domain/paired"
	"gopaired/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Logging  LoggingConfig
}

// AnalysisConfig holds decision-procedure settings
type AnalysisConfig struct {
	// DefaultSignificanceLevel is the Anderson-Darling level (percent) used
	// when the caller does not pick one explicitly
	DefaultSignificanceLevel int
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables (with an optional .env
// file) and validates it
func Load() (*Config, error) {
	// .env is optional; missing files are fine
	_ = godotenv.Load()

	config := &Config{
		Analysis: AnalysisConfig{DefaultSignificanceLevel: 5},
		Logging:  LoggingConfig{Level: "INFO"},
	}

	if v := os.Getenv("SIGNIFICANCE_LEVEL"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid SIGNIFICANCE_LEVEL")
		}
		config.Analysis.DefaultSignificanceLevel = level
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if _, err := paired.ParseSignificanceLevel(config.Analysis.DefaultSignificanceLevel); err != nil {
		return err
	}
	return nil
}
