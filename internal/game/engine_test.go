package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/hand"
	"github.com/lox/bjtrainer/internal/randutil"
	"github.com/lox/bjtrainer/internal/strategy"
)

func TestSplitReplacesHandInPlace(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Split, strategy.Double, strategy.Stand)}
	e := newStackedEngine(p, "8s8h6d3cTd")

	res, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, p.views, 3)
	assert.True(t, p.views[0].Legal.Has(strategy.Split))
	assert.True(t, p.views[0].Legal.Has(strategy.Surrender))

	afterSplit := p.views[1]
	require.Len(t, afterSplit.Hands, 2)
	assert.Equal(t, 0, afterSplit.Active)
	assert.Equal(t, 1, afterSplit.SplitDepth)
	assert.Equal(t, "8♠ 3♣", afterSplit.Hands[0].String())
	assert.Equal(t, "8♥ T♦", afterSplit.Hands[1].String())
	assert.False(t, afterSplit.Legal.Has(strategy.Surrender), "surrender is only offered before any split")
	assert.True(t, afterSplit.Legal.Has(strategy.Double))

	second := p.views[2]
	assert.Equal(t, 1, second.Active)
	assert.Equal(t, Outcome{Kind: Doubled, Total: 21}, second.Outcomes[0])

	require.Len(t, res.Outcomes, len(res.Hands))
	assert.Equal(t, []Outcome{{Kind: Doubled, Total: 21}, {Kind: Stood, Total: 18}}, res.Outcomes)
	assert.Equal(t, "6♦ T♣ T♣", res.Dealer.String())
	assert.True(t, res.DealerValue.Bust())
	assert.Empty(t, res.Mistakes)
	assert.Equal(t, 3, e.HandsSinceMistake())
}

func TestSplitDepthIsCapped(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(
		strategy.Split, strategy.Split, strategy.Split,
		strategy.Double, strategy.Double, strategy.Double,
		strategy.Stand,
	)}
	e := newStackedEngine(p, "8s8h6d8c8d8c2c2d2h")

	res, err := e.PlayRound(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Hands, 4)

	last := p.views[len(p.views)-1]
	assert.Equal(t, 3, last.SplitDepth)
	assert.Equal(t, 3, last.Active)
	assert.True(t, last.Hands[3].IsPair())
	assert.False(t, last.Legal.Has(strategy.Split))

	assert.Equal(t, []Outcome{
		{Kind: Doubled, Total: 20},
		{Kind: Doubled, Total: 20},
		{Kind: Doubled, Total: 20},
		{Kind: Stood, Total: 16},
	}, res.Outcomes)
	assert.Empty(t, p.mistakes)
}

func TestMistakeForcesCorrectAction(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Hit)}
	e := newStackedEngine(p, "Ts6hTd")

	res, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, p.mistakes, 1)
	m := p.mistakes[0]
	assert.Equal(t, strategy.Hit, m.Chosen)
	assert.Equal(t, strategy.Surrender, m.Correct)
	assert.Equal(t, "T♠ 6♥", m.Hand.String())
	assert.Equal(t, "hard 16 vs 10: surrender", m.Advice.String())

	assert.Equal(t, []Outcome{{Kind: Surrendered}}, res.Outcomes)
	assert.Equal(t, "T♦ T♣", res.Dealer.String())
	assert.Len(t, res.Mistakes, 1)
	assert.Equal(t, 1, e.PendingReplays())
	assert.Equal(t, 0, e.HandsSinceMistake())
}

func TestMistakeRoundDoesNotCountCleanDecisions(t *testing.T) {
	t.Parallel()

	// 8 vs 6: hit (chosen stand), 10 with three cards: hit, 19: stand.
	p := &scriptedPresenter{script: actions(strategy.Stand, strategy.Hit, strategy.Stand)}
	e := newStackedEngine(p, "5s3h6d2c9c")

	res, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Len(t, p.mistakes, 1)
	assert.Equal(t, []Outcome{{Kind: Stood, Total: 19}}, res.Outcomes)
	assert.Equal(t, 0, e.HandsSinceMistake())
	assert.Equal(t, 1, e.PendingReplays())
}

func TestMistakeReplayedAfterCleanDecisions(t *testing.T) {
	t.Parallel()

	var firstDone bool
	var replayMissed bool
	p := &scriptedPresenter{}
	p.choose = func(v RoundView, correct strategy.Action) strategy.Action {
		if !firstDone {
			firstDone = true
			return wrongAction(v.Legal, correct)
		}
		if v.Replay && !replayMissed {
			replayMissed = true
			return wrongAction(v.Legal, correct)
		}
		return correct
	}

	rng := randutil.New(42)
	e := NewEngine(rng, p, quietLogger())
	ctx := context.Background()

	var counts []int
	replayRound := -1
	for i := 0; i < 200 && replayRound < 0; i++ {
		res, err := e.PlayRound(ctx)
		require.NoError(t, err)
		if res.Replay {
			replayRound = i
			break
		}
		counts = append(counts, e.HandsSinceMistake())
	}
	require.GreaterOrEqual(t, replayRound, 1, "replay never served")

	// The replay is served at the first round start with enough clean
	// decisions behind it.
	assert.GreaterOrEqual(t, counts[replayRound-1], DefaultReplayAfter)
	for _, c := range counts[:replayRound-1] {
		assert.Less(t, c, DefaultReplayAfter)
	}

	require.Len(t, p.mistakes, 1)
	require.Len(t, p.replays, 1)
	assert.Equal(t, p.mistakes[0].Hand, p.replays[0].Hand)
	assert.Equal(t, p.mistakes[0].Upcard, p.replays[0].Upcard)
	assert.Equal(t, p.mistakes[0].Correct, p.replays[0].Correct)

	var replayView RoundView
	for _, v := range p.views {
		if v.Replay {
			replayView = v
			break
		}
	}
	require.True(t, replayView.Replay)
	assert.Equal(t, p.mistakes[0].Hand, replayView.Hands[0])
	assert.Equal(t, p.mistakes[0].Upcard, replayView.Upcard)
	assert.Equal(t, 0, replayView.SplitDepth)

	// Missing the replayed hand again is corrected but not re-queued.
	assert.True(t, replayMissed)
	assert.Len(t, p.mistakes, 1)
	assert.Equal(t, 0, e.PendingReplays())
}

func TestReplayWaitsForConfiguredGap(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Hit)}
	e := newStackedEngine(p, "Ts6hTd", WithReplayAfter(1))
	ctx := context.Background()

	_, err := e.PlayRound(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.PendingReplays())

	// One clean round before the replay is eligible.
	res, err := e.PlayRound(ctx)
	require.NoError(t, err)
	assert.False(t, res.Replay)
	assert.GreaterOrEqual(t, e.HandsSinceMistake(), 1)

	res, err = e.PlayRound(ctx)
	require.NoError(t, err)
	assert.True(t, res.Replay)
	assert.Equal(t, "T♠ 6♥", res.Hands[0][:2].String())
	assert.Equal(t, 0, e.PendingReplays())
}

func TestMissedReplayCountsAsDecision(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Hit)}
	p.choose = func(v RoundView, correct strategy.Action) strategy.Action {
		if v.Replay {
			return strategy.Stand
		}
		return correct
	}
	e := newStackedEngine(p, "Ts6hTd", WithReplayAfter(1))
	ctx := context.Background()

	_, err := e.PlayRound(ctx)
	require.NoError(t, err)
	_, err = e.PlayRound(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.HandsSinceMistake())

	// Serving the replay resets the counter; the missed answer then counts
	// as one completed decision.
	res, err := e.PlayRound(ctx)
	require.NoError(t, err)
	require.True(t, res.Replay)
	assert.Equal(t, Surrendered, res.Outcomes[0].Kind)
	assert.Equal(t, 1, e.HandsSinceMistake())
	assert.Equal(t, 0, e.PendingReplays())
	assert.Len(t, p.mistakes, 1)
}

func TestDealerHitsSoft17(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		want  bool
	}{
		{"As6h", true},
		{"As6hTc", false},
		{"Ts7h", false},
		{"Ts6h", true},
		{"As7h", false},
		{"Ts8h", false},
		{"As5h", true},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			v := hand.New(deck.MustParseCards(tt.cards)...).Value()
			assert.Equal(t, tt.want, dealerHits(v))
		})
	}
}

func TestDealerDrawsOnSoft17(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Stand)}
	e := newStackedEngine(p, "Ts9hAs6h")

	res, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "A♠ 6♥ T♣", res.Dealer.String())
	assert.Equal(t, hand.Value{Total: 17}, res.DealerValue)
}

func TestShoeRefilledAtRoundStart(t *testing.T) {
	t.Parallel()

	rng := randutil.New(3)
	short := make([]deck.Card, deck.ReshuffleThreshold-1)
	for i := range short {
		short[i] = deck.NewCard(deck.Spades, deck.Nine)
	}
	p := &scriptedPresenter{}
	e := NewEngine(rng, p, quietLogger(),
		WithShoe(deck.NewShoeFromCards(rng, short)),
		WithDealBias(1, 1))

	_, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, p.views)
	first := p.views[0]
	assert.True(t, first.Reshuffled)
	assert.Equal(t, deck.ShoeSize-3, first.ShoeRemaining)
}

func TestShoeNotRefilledAboveThreshold(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Stand)}
	e := newStackedEngine(p, "Ts9h7d")

	_, err := e.PlayRound(context.Background())
	require.NoError(t, err)
	assert.False(t, p.views[0].Reshuffled)
}

func TestIllegalActionsIgnored(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{script: actions(strategy.Split, strategy.NoAction, strategy.Stand)}
	e := newStackedEngine(p, "Ts9h7d")

	res, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, p.awaited)
	assert.Len(t, p.views, 1, "illegal input does not re-render")
	assert.Empty(t, p.mistakes)
	assert.Equal(t, []Outcome{{Kind: Stood, Total: 19}}, res.Outcomes)
}

func TestQuitAbortsRound(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{quitAt: 1}
	e := newStackedEngine(p, "Ts9h7d")

	_, err := e.PlayRound(context.Background())
	require.ErrorIs(t, err, ErrQuit)
	assert.Empty(t, p.results)
}

func TestRunEndsCleanlyOnQuit(t *testing.T) {
	t.Parallel()

	p := &scriptedPresenter{quitAt: 30}
	e := NewEngine(randutil.New(9), p, quietLogger())

	require.NoError(t, e.Run(context.Background()))
	assert.NotEmpty(t, p.results)
	for _, res := range p.results {
		assert.Len(t, res.Outcomes, len(res.Hands))
		for _, o := range res.Outcomes {
			assert.True(t, o.Resolved())
		}
	}
}

func TestRunEndsCleanlyOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedPresenter{}
	e := NewEngine(randutil.New(9), p, quietLogger())
	require.NoError(t, e.Run(ctx))
	assert.Empty(t, p.views)
}

func TestBiasedDeal(t *testing.T) {
	t.Parallel()

	t.Run("rejected deals favour soft hands and pairs", func(t *testing.T) {
		e := NewEngine(randutil.New(11), &scriptedPresenter{}, quietLogger(), WithDealBias(0, DefaultDealAttempts))
		for range 200 {
			e.shoe.EnsureDealable()
			before := e.shoe.Remaining()
			player, _, attempts := e.dealOpening()

			assert.Equal(t, before-3, e.shoe.Remaining(), "rejected cards go back in the shoe")
			assert.LessOrEqual(t, attempts, DefaultDealAttempts)
			if attempts < DefaultDealAttempts {
				assert.True(t, player.Value().Soft || player.IsPair(), "hand %s accepted early", player)
			}
		}
	})

	t.Run("certain acceptance keeps the first deal", func(t *testing.T) {
		e := NewEngine(randutil.New(11), &scriptedPresenter{}, quietLogger(), WithDealBias(1, DefaultDealAttempts))
		for range 50 {
			e.shoe.EnsureDealable()
			_, _, attempts := e.dealOpening()
			assert.Equal(t, 1, attempts)
		}
	})
}

type countingObserver struct {
	decisions int
	correct   int
	rounds    int
}

func (o *countingObserver) DecisionMade(d Decision) {
	o.decisions++
	if d.Correct() {
		o.correct++
	}
}

func (o *countingObserver) RoundCompleted(*RoundResult) {
	o.rounds++
}

func TestObserversSeeEveryDecision(t *testing.T) {
	t.Parallel()

	obs := &countingObserver{}
	p := &scriptedPresenter{script: actions(strategy.Hit)}
	e := newStackedEngine(p, "Ts6hTd", WithObserver(obs))

	_, err := e.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, obs.decisions)
	assert.Equal(t, 0, obs.correct)
	assert.Equal(t, 1, obs.rounds)
}
