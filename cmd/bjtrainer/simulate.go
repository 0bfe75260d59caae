package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/bjtrainer/internal/randutil"
	"github.com/lox/bjtrainer/internal/sessionid"
	"github.com/lox/bjtrainer/internal/simulator"
)

type SimulateCmd struct {
	Rounds    int           `short:"n" default:"10000" help:"Rounds to play"`
	Workers   int           `short:"w" help:"Parallel sessions (default: number of CPUs)"`
	ErrorRate float64       `short:"e" default:"0" help:"Chance the autoplayer picks a wrong action (0-1)"`
	Seed      int64         `help:"Seed for reproducible runs (0 uses the config or the clock)"`
	Timeout   time.Duration `help:"Stop after this long (0 means no limit)"`
	StatsFile string        `help:"Write the merged statistics as JSON to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.ErrorRate < 0 || c.ErrorRate > 1 {
		return fmt.Errorf("error rate must be between 0 and 1: %v", c.ErrorRate)
	}

	id := sessionid.New()
	logger := newLogger(os.Stderr, cfg.LogLevel(), "simulate").With("session", id)

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Trainer.Seed
	}
	seed = randutil.Seed(seed)

	workers := c.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	logger.Info("Running simulation", "rounds", c.Rounds, "workers", workers, "errorRate", c.ErrorRate, "seed", seed)

	sim := simulator.New(simulator.Config{
		Rounds:    c.Rounds,
		Workers:   workers,
		ErrorRate: c.ErrorRate,
		Seed:      seed,
		Timeout:   c.Timeout,
		Options:   cfg.EngineOptions(),
		Logger:    logger,
	})

	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Fprintln(os.Stdout, renderSummary(stats))
	return writeReport(c.StatsFile, id, stats, quartz.NewReal(), logger)
}
