package game

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/strategy"
)

// Engine runs training rounds. The shoe, the mistake queue and the
// clean-decision counter carry over between rounds; everything else is
// rebuilt per round. An Engine is driven by a single goroutine.
type Engine struct {
	shoe      *deck.Shoe
	rng       *rand.Rand
	presenter Presenter
	logger    *log.Logger
	cfg       engineConfig

	mistakes          []MistakeRecord
	handsSinceMistake int
	rounds            int
}

// NewEngine creates an engine with a required RNG and presenter.
func NewEngine(rng *rand.Rand, presenter Presenter, logger *log.Logger, opts ...EngineOption) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	if presenter == nil {
		panic("presenter is required for engine creation")
	}

	cfg := engineConfig{
		replayAfter:  DefaultReplayAfter,
		dealBias:     DefaultDealBias,
		dealAttempts: DefaultDealAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.dealAttempts < 1 {
		cfg.dealAttempts = 1
	}

	shoe := cfg.shoe
	if shoe == nil {
		shoe = deck.NewShoe(rng)
	}

	return &Engine{
		shoe:      shoe,
		rng:       rng,
		presenter: presenter,
		logger:    logger.WithPrefix("engine"),
		cfg:       cfg,
	}
}

// PendingReplays returns the number of queued mistakes.
func (e *Engine) PendingReplays() int {
	return len(e.mistakes)
}

// HandsSinceMistake returns the clean decisions since the last mistake was
// recorded or replayed.
func (e *Engine) HandsSinceMistake() int {
	return e.handsSinceMistake
}

// Rounds returns the number of rounds started.
func (e *Engine) Rounds() int {
	return e.rounds
}

// Run plays rounds until the presenter quits or ctx is cancelled. Quitting is
// not an error.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if _, err := e.PlayRound(ctx); err != nil {
			if isQuit(err) {
				e.logger.Info("Session ended", "rounds", e.rounds, "pendingReplays", len(e.mistakes))
				return nil
			}
			return err
		}
	}
}

// PlayRound plays one complete round: deal or replay, every player hand in
// order, then the dealer.
func (e *Engine) PlayRound(ctx context.Context) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := e.startRound(ctx)
	if err != nil {
		return nil, err
	}

	var mistakes []Mistake
	for r.Active = 0; r.Active < len(r.Hands); r.Active++ {
		for !r.Outcomes[r.Active].Resolved() {
			m, err := e.decide(ctx, r)
			if err != nil {
				return nil, err
			}
			if m != nil {
				mistakes = append(mistakes, *m)
			}
		}
	}

	e.playDealer(r)
	result := r.result(mistakes)
	e.logger.Debug("Round complete",
		"round", r.Number,
		"outcomes", result.Outcomes,
		"dealer", r.Dealer.String(),
		"dealerTotal", result.DealerValue.Total)

	for _, o := range e.cfg.observers {
		o.RoundCompleted(result)
	}
	if err := e.presenter.NotifyRoundResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) startRound(ctx context.Context) (*Round, error) {
	e.rounds++
	reshuffled := e.shoe.EnsureDealable()
	if reshuffled {
		e.logger.Info("Shoe refilled", "cards", e.shoe.Remaining())
	}

	if len(e.mistakes) > 0 && e.handsSinceMistake >= e.cfg.replayAfter {
		record := e.mistakes[0]
		e.mistakes = e.mistakes[1:]
		e.handsSinceMistake = 0

		r := newRound(e.rounds, record.Hand.Clone(), record.Upcard)
		r.Replay = true
		r.Reshuffled = reshuffled
		e.logger.Info("Replaying mistake",
			"round", r.Number,
			"hand", record.Hand.String(),
			"upcard", record.Upcard.String(),
			"correct", record.Correct)

		if err := e.presenter.NotifyReplayStart(ctx, record); err != nil {
			return nil, err
		}
		return r, nil
	}

	player, upcard, attempts := e.dealOpening()
	r := newRound(e.rounds, player, upcard)
	r.Reshuffled = reshuffled
	e.logger.Debug("Dealt round",
		"round", r.Number,
		"hand", player.String(),
		"upcard", upcard.String(),
		"attempts", attempts,
		"shoe", e.shoe.Remaining())
	return r, nil
}

// decide runs one decision point on the active hand. It returns the mistake
// when the player's choice was recorded as one.
func (e *Engine) decide(ctx context.Context, r *Round) (*Mistake, error) {
	sit := r.situation()
	advice := strategy.Advise(sit)
	legal := sit.Legal()

	e.presenter.RenderState(r.View(legal, e.shoe.Remaining(), len(e.mistakes)))

	chosen, err := e.awaitLegal(ctx, legal)
	if err != nil {
		return nil, err
	}

	d := Decision{
		Round:     r.Number,
		HandIndex: r.Active,
		Situation: sit,
		Advice:    advice,
		Chosen:    chosen,
		Replay:    r.Replay,
	}
	for _, o := range e.cfg.observers {
		o.DecisionMade(d)
	}

	var mistake *Mistake
	switch {
	case d.Correct():
		if !r.Mistake {
			e.handsSinceMistake++
		}
	case r.Replay:
		// Misses are not queued again, so the decision still counts.
		if !r.Mistake {
			e.handsSinceMistake++
		}
		e.logger.Info("Missed replayed hand", "round", r.Number, "chosen", chosen, "correct", advice.Action)
	default:
		r.Mistake = true
		e.mistakes = append(e.mistakes, MistakeRecord{
			Hand:    sit.Hand.Clone(),
			Upcard:  r.Upcard,
			Correct: advice.Action,
		})
		e.handsSinceMistake = 0
		mistake = &Mistake{
			HandIndex: r.Active,
			Hand:      sit.Hand.Clone(),
			Upcard:    r.Upcard,
			Chosen:    chosen,
			Correct:   advice.Action,
			Advice:    advice,
		}
		e.logger.Info("Mistake recorded",
			"round", r.Number,
			"hand", sit.Hand.String(),
			"upcard", r.Upcard.String(),
			"chosen", chosen,
			"correct", advice.Action,
			"queued", len(e.mistakes))
		if err := e.presenter.NotifyMistake(ctx, *mistake); err != nil {
			return nil, err
		}
	}

	// The player's action only runs when it was right; otherwise the correct
	// one does.
	e.execute(r, advice.Action)
	return mistake, nil
}

func (e *Engine) awaitLegal(ctx context.Context, legal strategy.ActionSet) (strategy.Action, error) {
	for {
		if err := ctx.Err(); err != nil {
			return strategy.NoAction, err
		}
		a, err := e.presenter.AwaitAction(ctx, legal)
		if err != nil {
			return strategy.NoAction, err
		}
		if legal.Has(a) {
			return a, nil
		}
		e.logger.Debug("Ignoring illegal action", "action", a, "legal", legal)
	}
}

func (e *Engine) execute(r *Round, a strategy.Action) {
	i := r.Active
	switch a {
	case strategy.Surrender:
		r.resolve(Outcome{Kind: Surrendered})

	case strategy.Stand:
		r.resolve(Outcome{Kind: Stood, Total: r.Hands[i].Value().Total})

	case strategy.Double:
		r.Hands[i] = append(r.Hands[i], e.shoe.Draw())
		v := r.Hands[i].Value()
		if v.Bust() {
			r.resolve(Outcome{Kind: Busted, Total: v.Total})
		} else {
			r.resolve(Outcome{Kind: Doubled, Total: v.Total})
		}

	case strategy.Hit:
		r.Hands[i] = append(r.Hands[i], e.shoe.Draw())
		if v := r.Hands[i].Value(); v.Bust() {
			r.resolve(Outcome{Kind: Busted, Total: v.Total})
		}

	case strategy.Split:
		left, right := e.shoe.Draw(), e.shoe.Draw()
		r.split(left, right)
	}
}
