package statistics

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/bjtrainer/internal/game"
	"github.com/lox/bjtrainer/internal/hand"
	"github.com/lox/bjtrainer/internal/strategy"
)

// Settlement is how a finished player hand compares with the dealer.
type Settlement int

const (
	Win Settlement = iota
	Lose
	Push
	Bust
	Surrender
	numSettlements
)

func (s Settlement) String() string {
	switch s {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	case Bust:
		return "bust"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Settlements lists every settlement in display order.
var Settlements = []Settlement{Win, Lose, Push, Bust, Surrender}

// Settle compares a resolved hand against the dealer's final total. A player
// bust loses even when the dealer also busts.
func Settle(o game.Outcome, dealer hand.Value) Settlement {
	switch o.Kind {
	case game.Surrendered:
		return Surrender
	case game.Busted:
		return Bust
	}
	switch {
	case dealer.Bust(), o.Total > dealer.Total:
		return Win
	case o.Total < dealer.Total:
		return Lose
	default:
		return Push
	}
}

// ChartStats counts decisions answered by one chart.
type ChartStats struct {
	Decisions int
	Correct   int
}

// Accuracy returns the fraction of correct decisions, or 0 with none.
func (c ChartStats) Accuracy() float64 {
	if c.Decisions == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Decisions)
}

// Statistics is a snapshot of training results.
type Statistics struct {
	Rounds    int
	Hands     int // player hands, counting each split hand
	Decisions int
	Correct   int
	Mistakes  int // wrong answers outside replays

	ReplaysServed int
	ReplaysPassed int

	Charts      [4]ChartStats // indexed by strategy.Chart
	Settlements [numSettlements]int
	Doubles     int // doubles played, including forced corrections
	Splits      int

	Elapsed time.Duration
}

// Accuracy returns the overall fraction of correct decisions.
func (s Statistics) Accuracy() float64 {
	return ChartStats{Decisions: s.Decisions, Correct: s.Correct}.Accuracy()
}

// Chart returns the tallies for one chart.
func (s Statistics) Chart(c strategy.Chart) ChartStats {
	if c < 0 || int(c) >= len(s.Charts) {
		return ChartStats{}
	}
	return s.Charts[c]
}

// Settled returns the number of hands with the given settlement.
func (s Statistics) Settled(st Settlement) int {
	if st < 0 || st >= numSettlements {
		return 0
	}
	return s.Settlements[st]
}

// ConfidenceInterval95 returns a normal-approximation interval for the true
// accuracy.
func (s Statistics) ConfidenceInterval95() (float64, float64) {
	if s.Decisions == 0 {
		return 0, 0
	}
	p := s.Accuracy()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Decisions))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Merge adds other into s. Elapsed keeps the longest duration since merged
// sessions run side by side.
func (s *Statistics) Merge(other Statistics) {
	s.Rounds += other.Rounds
	s.Hands += other.Hands
	s.Decisions += other.Decisions
	s.Correct += other.Correct
	s.Mistakes += other.Mistakes
	s.ReplaysServed += other.ReplaysServed
	s.ReplaysPassed += other.ReplaysPassed
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	for i := range s.Charts {
		s.Charts[i].Decisions += other.Charts[i].Decisions
		s.Charts[i].Correct += other.Charts[i].Correct
	}
	for i := range s.Settlements {
		s.Settlements[i] += other.Settlements[i]
	}
	if other.Elapsed > s.Elapsed {
		s.Elapsed = other.Elapsed
	}
}

// Validate checks that the tallies are consistent with each other.
func (s Statistics) Validate() error {
	if s.Correct > s.Decisions {
		return fmt.Errorf("correct decisions %d exceed total %d", s.Correct, s.Decisions)
	}
	if s.Mistakes > s.Decisions-s.Correct {
		return fmt.Errorf("mistakes %d exceed wrong decisions %d", s.Mistakes, s.Decisions-s.Correct)
	}
	if s.ReplaysPassed > s.ReplaysServed {
		return fmt.Errorf("replays passed %d exceed served %d", s.ReplaysPassed, s.ReplaysServed)
	}
	var chartDecisions int
	for _, c := range s.Charts {
		chartDecisions += c.Decisions
	}
	if chartDecisions != s.Decisions {
		return fmt.Errorf("chart decisions %d do not sum to %d", chartDecisions, s.Decisions)
	}
	var settled int
	for _, n := range s.Settlements {
		settled += n
	}
	if settled != s.Hands {
		return fmt.Errorf("settlements %d do not match hands %d", settled, s.Hands)
	}
	return nil
}

// Session accumulates statistics as a game.Observer. It is safe to read a
// Snapshot from another goroutine while the engine is running.
type Session struct {
	clock   quartz.Clock
	started time.Time

	mu     sync.Mutex
	stats  Statistics
	missed map[int]bool // replay rounds with a wrong answer
}

var _ game.Observer = (*Session)(nil)

// NewSession starts a session timed by clock.
func NewSession(clock quartz.Clock) *Session {
	return &Session{
		clock:   clock,
		started: clock.Now(),
		missed:  make(map[int]bool),
	}
}

// DecisionMade implements game.Observer.
func (s *Session) DecisionMade(d game.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Decisions++
	switch d.Advice.Action {
	case strategy.Double:
		s.stats.Doubles++
	case strategy.Split:
		s.stats.Splits++
	}
	c := &s.stats.Charts[d.Advice.Chart]
	c.Decisions++
	if d.Correct() {
		s.stats.Correct++
		c.Correct++
		return
	}
	if d.Replay {
		s.missed[d.Round] = true
		return
	}
	s.stats.Mistakes++
}

// RoundCompleted implements game.Observer.
func (s *Session) RoundCompleted(r *game.RoundResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Rounds++
	s.stats.Hands += len(r.Hands)
	for _, o := range r.Outcomes {
		s.stats.Settlements[Settle(o, r.DealerValue)]++
	}
	if r.Replay {
		s.stats.ReplaysServed++
		if !s.missed[r.Number] {
			s.stats.ReplaysPassed++
		}
		delete(s.missed, r.Number)
	}
}

// Snapshot returns a copy of the current statistics.
func (s *Session) Snapshot() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.stats
	out.Elapsed = s.clock.Since(s.started)
	return out
}
