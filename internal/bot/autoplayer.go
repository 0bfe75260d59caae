package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/bjtrainer/internal/game"
	"github.com/lox/bjtrainer/internal/strategy"
)

// Autoplayer is a game.Presenter that answers from the strategy chart. With a
// non-zero error rate it sometimes picks a different legal action instead, so
// the engine's mistake and replay handling gets exercised.
type Autoplayer struct {
	rng       *rand.Rand
	logger    *log.Logger
	errorRate float64

	view game.RoundView
}

var _ game.Presenter = (*Autoplayer)(nil)

// NewAutoplayer creates an autoplayer. errorRate is clamped to [0, 1].
func NewAutoplayer(rng *rand.Rand, logger *log.Logger, errorRate float64) *Autoplayer {
	return &Autoplayer{
		rng:       rng,
		logger:    logger.WithPrefix("bot"),
		errorRate: min(max(errorRate, 0), 1),
	}
}

func (a *Autoplayer) RenderState(view game.RoundView) {
	a.view = view
}

func (a *Autoplayer) AwaitAction(ctx context.Context, legal strategy.ActionSet) (strategy.Action, error) {
	if err := ctx.Err(); err != nil {
		return strategy.NoAction, err
	}

	correct := strategy.Advise(a.view.Situation()).Action
	if a.errorRate == 0 || a.rng.Float64() >= a.errorRate {
		return correct, nil
	}

	var wrong []strategy.Action
	for _, act := range legal.List() {
		if act != correct {
			wrong = append(wrong, act)
		}
	}
	if len(wrong) == 0 {
		return correct, nil
	}
	choice := wrong[a.rng.IntN(len(wrong))]
	a.logger.Debug("Deliberate mistake",
		"hand", a.view.Hands[a.view.Active].String(),
		"upcard", a.view.Upcard.String(),
		"chosen", choice,
		"correct", correct)
	return choice, nil
}

func (a *Autoplayer) NotifyMistake(ctx context.Context, m game.Mistake) error {
	return ctx.Err()
}

func (a *Autoplayer) NotifyReplayStart(ctx context.Context, r game.MistakeRecord) error {
	return ctx.Err()
}

func (a *Autoplayer) NotifyRoundResult(ctx context.Context, r *game.RoundResult) error {
	return ctx.Err()
}
