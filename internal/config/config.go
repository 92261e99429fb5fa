package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
)

// Config holds everything the binary wires at startup. Values merge in three
// layers: built-in defaults, then the config file (~/.masar/config.yaml or
// MASAR_CONFIG), then environment variables.
type Config struct {
	// DBPath is the SQLite database file (default ~/.masar/masar.db).
	DBPath string `yaml:"db_path"`

	// LogUseCases enables slog instrumentation of service use cases.
	LogUseCases bool `yaml:"log_use_cases"`

	Aggregation AggregationConfig `yaml:"aggregation"`
	Thresholds  ThresholdsConfig  `yaml:"thresholds"`
}

// AggregationConfig carries the default rollup options as config strings;
// AggregationOptions converts them for the engine.
type AggregationConfig struct {
	DateHandling        string `yaml:"date_handling"`
	ProgressWeighting   string `yaml:"progress_weighting"`
	Recursive           *bool  `yaml:"recursive"`
	CancelledAsComplete bool   `yaml:"cancelled_as_complete"`
}

// ThresholdsConfig carries the budget health trip points, in percent.
type ThresholdsConfig struct {
	UtilizationWarning  float64 `yaml:"utilization_warning"`
	UtilizationCritical float64 `yaml:"utilization_critical"`
	VarianceWarning     float64 `yaml:"variance_warning"`
	VarianceCritical    float64 `yaml:"variance_critical"`
}

// Default returns the built-in configuration. DBPath stays empty here; Load
// resolves it against the home directory last, so file and env overrides win.
func Default() Config {
	opts := aggregation.DefaultOptions()
	th := finance.DefaultThresholds()
	recursive := opts.RecursiveAggregation
	return Config{
		Aggregation: AggregationConfig{
			DateHandling:      string(opts.DateHandling),
			ProgressWeighting: string(opts.ProgressWeighting),
			Recursive:         &recursive,
		},
		Thresholds: ThresholdsConfig{
			UtilizationWarning:  th.UtilizationWarning,
			UtilizationCritical: th.UtilizationCritical,
			VarianceWarning:     th.VarianceWarning,
			VarianceCritical:    th.VarianceCritical,
		},
	}
}

// Load builds the effective configuration: defaults, overlaid by the config
// file when one exists, overlaid by environment variables.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("MASAR_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".masar", "config.yaml")
		}
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".masar", "masar.db")
	}
	return cfg, nil
}

// loadFile overlays the YAML file onto cfg. A missing file is not an error:
// the config file is optional.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MASAR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MASAR_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MASAR_DATE_HANDLING"); v != "" {
		cfg.Aggregation.DateHandling = v
	}
	if v := os.Getenv("MASAR_PROGRESS_WEIGHTING"); v != "" {
		cfg.Aggregation.ProgressWeighting = v
	}
	if v := os.Getenv("MASAR_RECURSIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Aggregation.Recursive = &b
		}
	}
	applyFloatEnv(&cfg.Thresholds.UtilizationWarning, "MASAR_UTILIZATION_WARNING")
	applyFloatEnv(&cfg.Thresholds.UtilizationCritical, "MASAR_UTILIZATION_CRITICAL")
	applyFloatEnv(&cfg.Thresholds.VarianceWarning, "MASAR_VARIANCE_WARNING")
	applyFloatEnv(&cfg.Thresholds.VarianceCritical, "MASAR_VARIANCE_CRITICAL")
}

func applyFloatEnv(dst *float64, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*dst = f
	}
}

// AggregationOptions converts the configured strings into engine options.
// Unrecognized values fall back to the defaults rather than failing startup.
func (c Config) AggregationOptions() aggregation.Options {
	opts := aggregation.DefaultOptions()
	if dh, err := aggregation.ParseDateHandling(c.Aggregation.DateHandling); err == nil {
		opts.DateHandling = dh
	}
	if pw, err := aggregation.ParseProgressWeighting(c.Aggregation.ProgressWeighting); err == nil {
		opts.ProgressWeighting = pw
	}
	if c.Aggregation.Recursive != nil {
		opts.RecursiveAggregation = *c.Aggregation.Recursive
	}
	opts.CancelledAsComplete = c.Aggregation.CancelledAsComplete
	return opts
}

// HealthThresholds converts the configured trip points for the finance layer.
func (c Config) HealthThresholds() finance.HealthThresholds {
	return finance.HealthThresholds{
		UtilizationWarning:  c.Thresholds.UtilizationWarning,
		UtilizationCritical: c.Thresholds.UtilizationCritical,
		VarianceWarning:     c.Thresholds.VarianceWarning,
		VarianceCritical:    c.Thresholds.VarianceCritical,
	}
}
