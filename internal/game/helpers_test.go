package game

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/randutil"
	"github.com/lox/bjtrainer/internal/strategy"
)

// scriptedPresenter plays queued actions first, then defers to choose. With
// no chooser it follows the oracle. Every call is recorded.
type scriptedPresenter struct {
	script []strategy.Action
	choose func(v RoundView, correct strategy.Action) strategy.Action
	quitAt int // quit on this AwaitAction call (1-based); 0 never

	views    []RoundView
	awaited  int
	mistakes []Mistake
	replays  []MistakeRecord
	results  []*RoundResult
}

func (p *scriptedPresenter) RenderState(v RoundView) {
	p.views = append(p.views, v)
}

func (p *scriptedPresenter) AwaitAction(ctx context.Context, legal strategy.ActionSet) (strategy.Action, error) {
	p.awaited++
	if p.quitAt > 0 && p.awaited >= p.quitAt {
		return strategy.NoAction, ErrQuit
	}
	if len(p.script) > 0 {
		a := p.script[0]
		p.script = p.script[1:]
		return a, nil
	}
	v := p.views[len(p.views)-1]
	correct := strategy.Advise(v.Situation()).Action
	if p.choose != nil {
		return p.choose(v, correct), nil
	}
	return correct, nil
}

func (p *scriptedPresenter) NotifyMistake(ctx context.Context, m Mistake) error {
	p.mistakes = append(p.mistakes, m)
	return nil
}

func (p *scriptedPresenter) NotifyReplayStart(ctx context.Context, r MistakeRecord) error {
	p.replays = append(p.replays, r)
	return nil
}

func (p *scriptedPresenter) NotifyRoundResult(ctx context.Context, r *RoundResult) error {
	p.results = append(p.results, r)
	return nil
}

// wrongAction returns the first legal action that is not correct.
func wrongAction(legal strategy.ActionSet, correct strategy.Action) strategy.Action {
	for _, a := range legal.List() {
		if a != correct {
			return a
		}
	}
	return correct
}

// stackedShoe deals cards in order, followed by enough ten-valued padding to
// keep the shoe above the reshuffle threshold.
func stackedShoe(cards string) *deck.Shoe {
	stacked := deck.MustParseCards(cards)
	for range deck.ReshuffleThreshold + 10 {
		stacked = append(stacked, deck.NewCard(deck.Clubs, deck.Ten))
	}
	return deck.NewShoeFromCards(randutil.New(1), stacked)
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newStackedEngine builds an engine that keeps the first deal it draws.
func newStackedEngine(p Presenter, cards string, opts ...EngineOption) *Engine {
	opts = append([]EngineOption{WithShoe(stackedShoe(cards)), WithDealBias(1, 1)}, opts...)
	return NewEngine(randutil.New(1), p, quietLogger(), opts...)
}

func actions(as ...strategy.Action) []strategy.Action {
	return as
}
