package config

import (
	"fmt"
	"strings"
)

// Config is cmd/emswap's full runtime configuration.
type Config struct {
	Generation GenerationConfig `koanf:"generation"`
	Engine     EngineConfig     `koanf:"engine"`
	Log        LogConfig        `koanf:"log"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

// GenerationConfig controls the degree sequence and edge materialization.
type GenerationConfig struct {
	NumNodes int     `koanf:"num_nodes"`
	MinDeg   int64   `koanf:"min_deg"`
	MaxDeg   int64   `koanf:"max_deg"`
	Gamma    float64 `koanf:"gamma"`
	Seed     uint64  `koanf:"seed"`
}

// EngineConfig controls the swap engine sweep.
type EngineConfig struct {
	// Name is "internal" or "tfp".
	Name              string `koanf:"name"`
	SwapsPerIteration int    `koanf:"swaps_per_iteration"`
	SweepMin          int    `koanf:"sweep_min"`
	SweepMax          int    `koanf:"sweep_max"`
	SweepSteps        int    `koanf:"sweep_steps"`
	// RAMBudgetBytes bounds tfp's commit-phase emio.Sorter run size: the
	// number of touched edges held in memory per run before it spills to
	// disk.
	RAMBudgetBytes int64 `koanf:"ram_budget_bytes"`
}

// LogConfig controls charmbracelet/log plus an optional lumberjack rotation.
type LogConfig struct {
	Level      string `koanf:"level"`
	FilePath   string `koanf:"file_path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the optional prometheus/chi metrics server.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	Path    string `koanf:"path"`
}

// Validate rejects a configuration that would make generation or the sweep
// meaningless.
func (c *Config) Validate() error {
	var errs []string

	if c.Generation.NumNodes <= 0 {
		errs = append(errs, "generation.num_nodes must be positive")
	}
	if c.Generation.MaxDeg < c.Generation.MinDeg {
		errs = append(errs, fmt.Sprintf("generation.max_deg (%d) must be >= generation.min_deg (%d)", c.Generation.MaxDeg, c.Generation.MinDeg))
	}

	switch strings.ToLower(c.Engine.Name) {
	case "internal", "tfp":
	default:
		errs = append(errs, fmt.Sprintf("engine.name must be one of: internal, tfp, got %q", c.Engine.Name))
	}
	if c.Engine.SweepSteps <= 0 {
		errs = append(errs, "engine.sweep_steps must be positive")
	}
	if c.Engine.SweepMax < c.Engine.SweepMin {
		errs = append(errs, fmt.Sprintf("engine.sweep_max (%d) must be >= engine.sweep_min (%d)", c.Engine.SweepMax, c.Engine.SweepMin))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
