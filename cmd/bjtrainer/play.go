package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bjtrainer/internal/game"
	"github.com/lox/bjtrainer/internal/randutil"
	"github.com/lox/bjtrainer/internal/sessionid"
	"github.com/lox/bjtrainer/internal/statistics"
	"github.com/lox/bjtrainer/internal/tui"
)

type PlayCmd struct {
	Seed      int64  `help:"Shuffle seed for a reproducible session (0 uses the config or the clock)"`
	StatsFile string `help:"Write session statistics as JSON to this file on exit" type:"path"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()
	id := sessionid.New()
	logger := newLogger(logFile, cfg.LogLevel(), "bjtrainer").With("session", id)

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Trainer.Seed
	}
	seed = randutil.Seed(seed)
	logger.Info("Starting training session", "seed", seed, "replayAfter", cfg.Trainer.ReplayAfter)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	clock := quartz.NewReal()
	session := statistics.NewSession(clock)
	model := tui.NewTUIModel(logger, session)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge := tui.NewBridge(program, model, clock, cfg.ReplayNotice(), logger)

	opts := append(cfg.EngineOptions(), game.WithObserver(session))
	engine := game.NewEngine(randutil.New(seed), bridge, logger, opts...)

	var eg errgroup.Group
	eg.Go(func() error {
		defer model.SendQuitSignal()
		return engine.Run(ctx)
	})

	_, runErr := program.Run()
	cancel()
	engineErr := eg.Wait()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI failed: %w", runErr)
	}
	if engineErr != nil {
		return fmt.Errorf("training session failed: %w", engineErr)
	}

	st := session.Snapshot()
	logger.Info("Session finished", "rounds", st.Rounds, "decisions", st.Decisions, "accuracy", st.Accuracy())
	fmt.Fprintln(os.Stdout, renderSummary(st))
	return writeReport(c.StatsFile, id, st, clock, logger)
}
