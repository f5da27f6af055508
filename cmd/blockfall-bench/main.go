package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/session"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: search for blockfall.yaml)")
	games := flag.Int("games", 100, "Number of games to play.")
	maxTicks := flag.Int("max-ticks", 5000, "Stop a game after this many ticks even if it has not ended.")
	seed := flag.Uint64("seed", 0, "Base seed; game i uses seed+i. 0 uses the configured seed or the clock.")
	inputs := flag.Int("inputs", 1, "Random player actions sent between ticks.")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Games played in parallel.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		logger.Fatalf("Invalid game options: %v", err)
	}

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = cfg.Seed
	}
	if baseSeed == 0 {
		baseSeed = uint64(time.Now().UnixNano())
	}

	plan := Plan{
		Options:   opts,
		Games:     *games,
		MaxTicks:  *maxTicks,
		Seed:      baseSeed,
		InputRate: *inputs,
		Workers:   *workers,
	}

	report := &Report{
		Games:          plan.Games,
		MaxTicks:       plan.MaxTicks,
		Seed:           plan.Seed,
		InputRate:      plan.InputRate,
		Workers:        plan.Workers,
		Board:          fmt.Sprintf("%dx%d", opts.Rules.Width, opts.Rules.Height),
		Catalog:        opts.Rules.Catalog.Len(),
		GCPauseMetrics: *gcPauseMetrics,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Infof("Playing %d games with %d workers...", plan.Games, plan.Workers)
	startTime := time.Now()
	results, err := runPlan(ctx, plan, log.NewEntry(logger))
	if err != nil {
		logger.Fatalf("Benchmark aborted: %v", err)
	}
	report.TotalTime = time.Since(startTime)

	for _, r := range results {
		report.Add(r)
	}
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("Benchmark finished.")

	fmt.Println("\n\n--- Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
