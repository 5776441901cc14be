// Command emswap generates a random simple graph and benchmarks the
// internal and out-of-core edge-swap engines against it.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/streamgraph/emswap/config"
	"github.com/streamgraph/emswap/degseq"
	"github.com/streamgraph/emswap/emerr"
	"github.com/streamgraph/emswap/havelhakimi"
	"github.com/streamgraph/emswap/internal/bench"
	"github.com/streamgraph/emswap/metrics"
	"github.com/streamgraph/emswap/swapsource"
)

// cli's flags override the matching config.Config field when set; a flag
// left at its zero value leaves the loaded configuration (file, env, or
// built-in defaults) untouched.
type cli struct {
	ConfigPath string `help:"Path to a YAML config file (or set EMSWAP_CONFIG_PATH)."`

	NumNodes int     `help:"Number of nodes to generate."`
	NumEdges int     `help:"Expected edge count; logged as a warning if the materialized graph differs."`
	MinDeg   int64   `help:"Minimum node degree."`
	MaxDeg   int64   `help:"Maximum node degree."`
	Gamma    float64 `help:"Power-law exponent."`
	Seed     uint64  `help:"PRNG seed for generation and swap selection."`

	SwapInternal bool `help:"Run the in-RAM internalswap engine."`
	SwapTFP      bool `help:"Run the out-of-core tfp engine."`

	SwapsPerIteration int `help:"Swaps submitted per iteration."`
	SweepMin          int `help:"First iteration to report (inclusive)."`
	SweepMax          int `help:"Last iteration to report (inclusive)."`
	SweepSteps        int `help:"Number of reported checkpoints between sweep-min and sweep-max."`

	MetricsAddr string `help:"Metrics server listen address."`
	MetricsPath string `help:"Metrics server path."`

	LogLevel string `help:"Log level: debug, info, warn, error."`
	LogFile  string `help:"Rotate logs through this file via lumberjack instead of writing to stderr."`
}

func main() {
	var c cli
	kong.Parse(&c)

	if err := c.Run(); err != nil {
		log.Default().Error("emswap failed", "err", err)
		os.Exit(1)
	}
}

func (c *cli) Run() error {
	if _, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(0.9),
		memlimit.WithProvider(memlimit.ApplyFallback(memlimit.FromCgroup, memlimit.FromSystem)),
	); err != nil {
		return fmt.Errorf("%w: memlimit: %v", emerr.ErrInvalidInput, err)
	}

	loaderOpts := []config.Option{}
	if c.ConfigPath != "" {
		loaderOpts = append(loaderOpts, config.WithConfigPath(c.ConfigPath))
	}
	cfg, err := config.NewLoader(loaderOpts...).Load()
	if err != nil {
		return fmt.Errorf("phase=config: %w", err)
	}
	c.applyOverrides(cfg)

	logger := c.buildLogger(cfg)
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		srv := metrics.NewServer(m, cfg.Metrics.Addr, cfg.Metrics.Path)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	engines := c.engines(cfg)
	if len(engines) == 0 {
		return fmt.Errorf("%w: at least one of --swap-internal, --swap-tfp is required", emerr.ErrInvalidInput)
	}

	logger.Info("generating degree sequence", "num_nodes", cfg.Generation.NumNodes, "min_deg", cfg.Generation.MinDeg, "max_deg", cfg.Generation.MaxDeg, "gamma", cfg.Generation.Gamma)
	seq, err := degseq.PowerLaw(cfg.Generation.Seed, cfg.Generation.NumNodes, cfg.Generation.Gamma, cfg.Generation.MinDeg, cfg.Generation.MaxDeg)
	if err != nil {
		return fmt.Errorf("phase=degseq: %w", err)
	}

	stream, err := havelhakimi.RIMGenerate(seq, cfg.Generation.Seed)
	if err != nil {
		return fmt.Errorf("phase=havelhakimi: %w", err)
	}
	vec, err := stream.ToVector()
	if err != nil {
		return fmt.Errorf("phase=havelhakimi: %w", err)
	}

	if c.NumEdges > 0 && vec.Len() != c.NumEdges {
		logger.Warn("materialized edge count differs from --num-edges", "requested", c.NumEdges, "actual", vec.Len())
	}
	logger.Info("graph materialized", "edges", vec.Len())

	source := swapsource.NewSource(int64(cfg.Generation.Seed), int64(vec.Len()))
	sweepCfg := bench.SweepConfig{
		Min: cfg.Engine.SweepMin, Max: cfg.Engine.SweepMax,
		Steps: cfg.Engine.SweepSteps, SwapsPerIteration: cfg.Engine.SwapsPerIteration,
		SortRAMBudget: int(cfg.Engine.RAMBudgetBytes),
	}

	start := time.Now()
	results, err := bench.Sweep(vec, source, sweepCfg, engines, m, runID, logger)
	if err != nil {
		return fmt.Errorf("phase=sweep: %w", err)
	}
	logger.Info("sweep done", "duration", time.Since(start))

	printResults(results)
	return nil
}

// applyOverrides copies any non-zero CLI flag onto cfg, taking priority over
// whatever config.Load resolved from file, env, or built-in defaults.
func (c *cli) applyOverrides(cfg *config.Config) {
	if c.NumNodes != 0 {
		cfg.Generation.NumNodes = c.NumNodes
	}
	if c.MinDeg != 0 {
		cfg.Generation.MinDeg = c.MinDeg
	}
	if c.MaxDeg != 0 {
		cfg.Generation.MaxDeg = c.MaxDeg
	}
	if c.Gamma != 0 {
		cfg.Generation.Gamma = c.Gamma
	}
	if c.Seed != 0 {
		cfg.Generation.Seed = c.Seed
	}
	if c.SwapsPerIteration != 0 {
		cfg.Engine.SwapsPerIteration = c.SwapsPerIteration
	}
	if c.SweepMax != 0 {
		cfg.Engine.SweepMax = c.SweepMax
	}
	if c.SweepSteps != 0 {
		cfg.Engine.SweepSteps = c.SweepSteps
	}
	if c.SweepMin != 0 {
		cfg.Engine.SweepMin = c.SweepMin
	}
	if c.MetricsAddr != "" {
		cfg.Metrics.Addr = c.MetricsAddr
		cfg.Metrics.Enabled = true
	}
	if c.MetricsPath != "" {
		cfg.Metrics.Path = c.MetricsPath
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.FilePath = c.LogFile
	}
}

func (c *cli) engines(cfg *config.Config) []string {
	var out []string
	if c.SwapInternal {
		out = append(out, "internal")
	}
	if c.SwapTFP {
		out = append(out, "tfp")
	}
	if len(out) == 0 {
		out = append(out, cfg.Engine.Name)
	}
	return out
}

func (c *cli) buildLogger(cfg *config.Config) *log.Logger {
	var logger *log.Logger
	if cfg.Log.FilePath != "" {
		logger = log.New(&lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	} else {
		logger = log.New(os.Stderr)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func printResults(results []bench.StepResult) {
	fmt.Printf("%-10s %10s %8s %10s %10s %10s %14s\n", "engine", "iteration", "swaps", "performed", "conflicts", "loops", "duration")
	for _, r := range results {
		fmt.Printf("%-10s %10d %8d %10d %10d %10d %14s\n", r.Engine, r.Iteration, r.Swaps, r.Performed, r.Conflicts, r.Loops, r.Duration)
	}
}
