// Package config loads wellplan runtime settings through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// ErrInvalidConfig indicates a setting outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// FieldOptConfig holds connection settings for the external FieldOpt solver.
type FieldOptConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// Config holds all runtime configuration for a wellplan process.
// Values are populated from .wellplan.yaml, WELLPLAN_* env vars, and CLI flags.
type Config struct {
	Wells         int            `mapstructure:"wells"`
	WellNames     []string       `mapstructure:"well_names"`
	DatasetDir    string         `mapstructure:"dataset_dir"`
	WatchDatasets bool           `mapstructure:"watch_datasets"`
	DBPath        string         `mapstructure:"db_path"`
	TelemetryPath string         `mapstructure:"telemetry_path"`
	Listen        string         `mapstructure:"listen"`
	Verbose       bool           `mapstructure:"verbose"`
	FieldOpt      FieldOptConfig `mapstructure:"fieldopt"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("wells", 0)
	viper.SetDefault("well_names", []string{})
	viper.SetDefault("dataset_dir", "")
	viper.SetDefault("watch_datasets", false)
	viper.SetDefault("db_path", "wellplan.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("verbose", false)
	viper.SetDefault("fieldopt.base_url", "http://127.0.0.1:5000")
	viper.SetDefault("fieldopt.timeout", 2*time.Minute)
	viper.SetDefault("fieldopt.retries", 2)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Wells < 0 {
		return Config{}, fmt.Errorf("config: %w: wells must not be negative, got %d", ErrInvalidConfig, cfg.Wells)
	}
	if cfg.Wells > wellgeom.MaxWells {
		return Config{}, fmt.Errorf("config: %w: wells must be at most %d, got %d", ErrInvalidConfig, wellgeom.MaxWells, cfg.Wells)
	}
	if cfg.FieldOpt.Retries < 0 {
		return Config{}, fmt.Errorf("config: %w: fieldopt.retries must not be negative, got %d", ErrInvalidConfig, cfg.FieldOpt.Retries)
	}
	return cfg, nil
}
