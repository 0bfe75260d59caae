package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bjtrainer/internal/bot"
	"github.com/lox/bjtrainer/internal/game"
	"github.com/lox/bjtrainer/internal/randutil"
	"github.com/lox/bjtrainer/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds       int
	Workers      int
	ErrorRate    float64 // chance the autoplayer deviates from the chart
	Seed         int64
	ReplayAfter  int
	DealBias     float64 // zero selects game.DefaultDealBias
	DealAttempts int
	Timeout      time.Duration       // zero means no limit
	Options      []game.EngineOption // applied after the settings above
	Clock        quartz.Clock
	Logger       *log.Logger
}

// Simulator plays training sessions with autoplayers in place of a person.
type Simulator struct {
	config Config
}

// New creates a new simulator, filling unset fields with the engine defaults.
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.ReplayAfter < 1 {
		config.ReplayAfter = game.DefaultReplayAfter
	}
	if config.DealAttempts < 1 {
		config.DealAttempts = game.DefaultDealAttempts
	}
	if config.DealBias == 0 {
		config.DealBias = game.DefaultDealBias
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run splits the rounds across independent sessions, one per worker, and
// merges their statistics. Each worker has its own shoe, engine and
// autoplayer seeded from the configured seed, so a seed reproduces the run.
func (s *Simulator) Run(ctx context.Context) (statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	workers := min(s.config.Workers, max(s.config.Rounds, 1))
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	results := make([]statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		g.Go(func() error {
			st, err := s.runWorker(ctx, w, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return statistics.Statistics{}, err
	}

	var total statistics.Statistics
	for _, st := range results {
		total.Merge(st)
	}
	if err := total.Validate(); err != nil {
		return statistics.Statistics{}, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, worker, rounds int) (statistics.Statistics, error) {
	seed := randutil.Derive(s.config.Seed, worker)
	logger := s.config.Logger.With("worker", worker)

	session := statistics.NewSession(s.config.Clock)
	player := bot.NewAutoplayer(randutil.New(randutil.Derive(seed, 1)), logger, s.config.ErrorRate)
	opts := []game.EngineOption{
		game.WithReplayAfter(s.config.ReplayAfter),
		game.WithDealBias(s.config.DealBias, s.config.DealAttempts),
	}
	opts = append(opts, s.config.Options...)
	opts = append(opts, game.WithObserver(session))
	engine := game.NewEngine(randutil.New(seed), player, logger, opts...)

	for range rounds {
		if _, err := engine.PlayRound(ctx); err != nil {
			return statistics.Statistics{}, err
		}
	}
	logger.Debug("Worker finished",
		"rounds", rounds,
		"pendingReplays", engine.PendingReplays())
	return session.Snapshot(), nil
}
