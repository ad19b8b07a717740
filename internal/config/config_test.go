package config

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Wells", cfg.Wells, 0},
		{"DatasetDir", cfg.DatasetDir, ""},
		{"WatchDatasets", cfg.WatchDatasets, false},
		{"DBPath", cfg.DBPath, "wellplan.db"},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Listen", cfg.Listen, ":8080"},
		{"Verbose", cfg.Verbose, false},
		{"FieldOpt.BaseURL", cfg.FieldOpt.BaseURL, "http://127.0.0.1:5000"},
		{"FieldOpt.Timeout", cfg.FieldOpt.Timeout, 2 * time.Minute},
		{"FieldOpt.Retries", cfg.FieldOpt.Retries, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if len(cfg.WellNames) != 0 {
		t.Errorf("WellNames = %v, want empty", cfg.WellNames)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper()

	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "wells",
			envKey: "WELLPLAN_WELLS",
			envVal: "12",
			field:  func(c Config) any { return c.Wells },
			want:   12,
		},
		{
			name:   "dataset_dir",
			envKey: "WELLPLAN_DATASET_DIR",
			envVal: "/data/run1",
			field:  func(c Config) any { return c.DatasetDir },
			want:   "/data/run1",
		},
		{
			name:   "watch_datasets",
			envKey: "WELLPLAN_WATCH_DATASETS",
			envVal: "true",
			field:  func(c Config) any { return c.WatchDatasets },
			want:   true,
		},
		{
			name:   "db_path",
			envKey: "WELLPLAN_DB_PATH",
			envVal: "/tmp/wells.db",
			field:  func(c Config) any { return c.DBPath },
			want:   "/tmp/wells.db",
		},
		{
			name:   "listen",
			envKey: "WELLPLAN_LISTEN",
			envVal: "127.0.0.1:9000",
			field:  func(c Config) any { return c.Listen },
			want:   "127.0.0.1:9000",
		},
		{
			name:   "verbose",
			envKey: "WELLPLAN_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so WELLPLAN_* env vars map to config keys.
			viper.SetEnvPrefix("WELLPLAN")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_NestedAndDuration(t *testing.T) {
	resetViper()
	viper.Set("fieldopt.timeout", "45s")
	viper.Set("fieldopt.base_url", "http://solver:8000")
	viper.Set("well_names", []string{"A-1", "A-2"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.FieldOpt.Timeout != 45*time.Second {
		t.Errorf("FieldOpt.Timeout = %v, want 45s", cfg.FieldOpt.Timeout)
	}
	if cfg.FieldOpt.BaseURL != "http://solver:8000" {
		t.Errorf("FieldOpt.BaseURL = %q", cfg.FieldOpt.BaseURL)
	}
	if len(cfg.WellNames) != 2 || cfg.WellNames[1] != "A-2" {
		t.Errorf("WellNames = %v", cfg.WellNames)
	}
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		key string
		val int
	}{
		{"wells", -1},
		{"wells", 101},
		{"fieldopt.retries", -3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s=%d", tt.key, tt.val), func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
