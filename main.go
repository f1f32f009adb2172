package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pthm-cable/strider/config"
	"github.com/pthm-cable/strider/physics"
	"github.com/pthm-cable/strider/population"
	"github.com/pthm-cable/strider/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	realtime := flag.Bool("realtime", false, "Drive the simulation with wall-clock timers instead of stepping flat out")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindowSec = *statsWindow
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	if output != nil {
		if err := cfg.WriteYAML(filepath.Join(output.Dir(), "config.yaml")); err != nil {
			slog.Warn("failed to snapshot config", "error", err)
		}
	}

	world := physics.NewWorld(physics.Policy{
		Gravity:           cfg.World.Gravity,
		AirDamping:        cfg.World.AirDamping,
		GroundY:           cfg.World.GroundY,
		GroundRestitution: cfg.Physics.GroundRestitution,
	}, cfg.Physics.ConstraintIterations)

	rng := rand.New(rand.NewSource(rngSeed))
	ctl := population.New(cfg, world, rng, output)
	defer ctl.Stop()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"realtime", *realtime,
		"max_ticks", *maxTicks,
		"capacity", cfg.Population.Capacity,
	)

	if *realtime {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		ctl.Run(ctx)
		return
	}

	for {
		ctl.Step()
		if *maxTicks > 0 && int(ctl.Tick()) >= *maxTicks {
			slog.Info("max ticks reached",
				"tick", ctl.Tick(),
				"generation", ctl.Generation(),
				"live", ctl.LiveCount(),
				"best_distance", ctl.BestLiveDistance(),
			)
			return
		}
	}
}
