package game

import "github.com/lox/bjtrainer/internal/deck"

const (
	// DefaultReplayAfter is how many clean decisions must pass before a queued
	// mistake is replayed.
	DefaultReplayAfter = 20
	// DefaultDealBias is the chance of keeping a plain hard-total deal.
	DefaultDealBias = 0.4
	// DefaultDealAttempts caps the biased re-deal loop.
	DefaultDealAttempts = 10
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	shoe         *deck.Shoe
	replayAfter  int
	dealBias     float64
	dealAttempts int
	observers    []Observer
}

// WithShoe sets a specific shoe. This overrides creating one from the RNG.
func WithShoe(shoe *deck.Shoe) EngineOption {
	return func(c *engineConfig) {
		c.shoe = shoe
	}
}

// WithReplayAfter sets the clean-decision gap before a mistake is replayed.
func WithReplayAfter(n int) EngineOption {
	return func(c *engineConfig) {
		c.replayAfter = n
	}
}

// WithDealBias sets the probability of accepting a hard, non-pair deal and the
// number of deal attempts before the last one is kept regardless.
func WithDealBias(probability float64, attempts int) EngineOption {
	return func(c *engineConfig) {
		c.dealBias = probability
		c.dealAttempts = attempts
	}
}

// WithObserver registers an observer for decisions and completed rounds.
func WithObserver(o Observer) EngineOption {
	return func(c *engineConfig) {
		c.observers = append(c.observers, o)
	}
}
