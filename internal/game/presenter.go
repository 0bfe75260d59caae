package game

import (
	"context"
	"errors"

	"github.com/lox/bjtrainer/internal/strategy"
)

// ErrQuit is returned by a presenter when the player asks to leave.
var ErrQuit = errors.New("player quit")

// Presenter is the engine's view of the outside world: anything that can show
// a round and supply one action at a time (a terminal UI, a bot, a test
// script). Methods that wait on the player take a context and return an error;
// any error aborts the session.
type Presenter interface {
	// RenderState shows the round at a decision point.
	RenderState(view RoundView)

	// AwaitAction blocks until the player picks an action. Returning an action
	// outside legal is allowed; the engine ignores it and asks again.
	AwaitAction(ctx context.Context, legal strategy.ActionSet) (strategy.Action, error)

	// NotifyMistake shows the correct action and returns once acknowledged.
	NotifyMistake(ctx context.Context, mistake Mistake) error

	// NotifyReplayStart announces that the next round replays a past mistake.
	NotifyReplayStart(ctx context.Context, record MistakeRecord) error

	// NotifyRoundResult shows the dealer's hand and the final outcomes.
	NotifyRoundResult(ctx context.Context, result *RoundResult) error
}

// Decision is one completed decision point, reported to observers.
type Decision struct {
	Round     int
	HandIndex int
	Situation strategy.Situation
	Advice    strategy.Advice
	Chosen    strategy.Action
	Replay    bool
}

// Correct reports whether the player chose the oracle's action.
func (d Decision) Correct() bool {
	return d.Chosen == d.Advice.Action
}

// Observer receives engine events. Observers run on the round loop's goroutine
// and must not block.
type Observer interface {
	DecisionMade(d Decision)
	RoundCompleted(result *RoundResult)
}

func isQuit(err error) bool {
	return errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled)
}
