package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "EMSWAP_"
	configEnvVar = "EMSWAP_CONFIG_PATH"
)

// Loader layers configuration from defaults, an optional YAML file, and
// environment variables, in that priority order.
type Loader struct {
	k          *koanf.Koanf
	configPath string
	envPrefix  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithConfigPath sets an explicit YAML file path, overriding the
// EMSWAP_CONFIG_PATH environment variable lookup.
func WithConfigPath(path string) Option {
	return func(l *Loader) { l.configPath = path }
}

// WithEnvPrefix overrides the default "EMSWAP_" environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader builds a Loader with defaults and the given options applied.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{k: koanf.New("."), envPrefix: envPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load layers defaults, the config file (if one resolves), and environment
// variables, then unmarshals and validates the result.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	if err := l.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("config: file: %w", err)
	}
	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"generation.num_nodes": 10000,
		"generation.min_deg":   int64(2),
		"generation.max_deg":   int64(50),
		"generation.gamma":     2.5,
		"generation.seed":      uint64(1),

		"engine.name":                "internal",
		"engine.swaps_per_iteration": 1000,
		"engine.sweep_min":           0,
		"engine.sweep_max":           10,
		"engine.sweep_steps":         10,
		"engine.ram_budget_bytes":    int64(256 * 1024 * 1024),

		"log.level":        "info",
		"log.file_path":    "",
		"log.max_size_mb":  100,
		"log.max_backups":  3,
		"log.max_age_days": 7,
		"log.compress":     true,

		"metrics.enabled": false,
		"metrics.addr":    ":9090",
		"metrics.path":    "/metrics",
	}
	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

// loadConfigFile loads the YAML file named by EMSWAP_CONFIG_PATH or set via
// WithConfigPath. Absence of a configured path is not an error: the CLI is
// expected to run from defaults and flags alone.
func (l *Loader) loadConfigFile() error {
	path := l.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return l.k.Load(file.Provider(path), yaml.Parser())
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, l.envPrefix)), "_", ".")
	}), nil)
}

// Load loads configuration with default options.
func Load() (*Config, error) {
	return NewLoader().Load()
}
