package game

import (
	"fmt"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/hand"
	"github.com/lox/bjtrainer/internal/strategy"
)

// OutcomeKind is how a player hand was resolved.
type OutcomeKind int

const (
	Pending OutcomeKind = iota
	Stood
	Doubled
	Busted
	Surrendered
)

func (k OutcomeKind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Stood:
		return "stand"
	case Doubled:
		return "double"
	case Busted:
		return "bust"
	case Surrendered:
		return "surrender"
	default:
		return "unknown"
	}
}

// Outcome is the fixed result of one player hand. Total is meaningful for
// Stood and Doubled.
type Outcome struct {
	Kind  OutcomeKind
	Total int
}

// Resolved reports whether the hand is finished.
func (o Outcome) Resolved() bool {
	return o.Kind != Pending
}

func (o Outcome) String() string {
	switch o.Kind {
	case Pending:
		return ""
	case Busted:
		return "Bust"
	case Surrendered:
		return "Surrender"
	case Doubled:
		return fmt.Sprintf("%d (doubled)", o.Total)
	default:
		return fmt.Sprintf("%d", o.Total)
	}
}

// MistakeRecord is a decision the player got wrong, kept for replay.
type MistakeRecord struct {
	Hand    hand.Hand
	Upcard  deck.Card
	Correct strategy.Action
}

// Mistake describes a wrong decision as it is surfaced to the player.
type Mistake struct {
	HandIndex int
	Hand      hand.Hand
	Upcard    deck.Card
	Chosen    strategy.Action
	Correct   strategy.Action
	Advice    strategy.Advice
}

// Round is the mutable state of one round. Hands and Outcomes always have the
// same length; an outcome never changes once resolved.
type Round struct {
	Number     int
	Hands      []hand.Hand
	Outcomes   []Outcome
	Upcard     deck.Card
	Dealer     hand.Hand
	SplitDepth int
	Active     int
	Replay     bool
	Mistake    bool
	Reshuffled bool
}

func newRound(number int, first hand.Hand, upcard deck.Card) *Round {
	return &Round{
		Number:   number,
		Hands:    []hand.Hand{first},
		Outcomes: []Outcome{{}},
		Upcard:   upcard,
	}
}

// situation builds the oracle input for the active hand.
func (r *Round) situation() strategy.Situation {
	i := r.Active
	h := r.Hands[i]
	two := len(h) == 2
	return strategy.Situation{
		Hand:         h,
		Upcard:       r.Upcard,
		CanSplit:     two && h.IsPair() && r.SplitDepth < strategy.MaxSplitDepth,
		CanDouble:    two,
		CanSurrender: two && i == 0 && r.SplitDepth == 0,
		SplitDepth:   r.SplitDepth,
	}
}

func (r *Round) resolve(o Outcome) {
	if r.Outcomes[r.Active].Resolved() {
		panic(fmt.Sprintf("hand %d resolved twice", r.Active))
	}
	r.Outcomes[r.Active] = o
}

// split replaces the active hand with two hands built from its cards plus the
// two drawn cards, leaving Active on the first of them.
func (r *Round) split(a, b deck.Card) {
	i := r.Active
	orig := r.Hands[i]
	left := hand.New(orig[0], a)
	right := hand.New(orig[1], b)

	hands := make([]hand.Hand, 0, len(r.Hands)+1)
	hands = append(hands, r.Hands[:i]...)
	hands = append(hands, left, right)
	hands = append(hands, r.Hands[i+1:]...)
	r.Hands = hands

	outcomes := make([]Outcome, 0, len(r.Outcomes)+1)
	outcomes = append(outcomes, r.Outcomes[:i]...)
	outcomes = append(outcomes, Outcome{}, Outcome{})
	outcomes = append(outcomes, r.Outcomes[i+1:]...)
	r.Outcomes = outcomes

	r.SplitDepth++
}

// View returns a snapshot for presenters; nothing in it aliases round state.
func (r *Round) View(legal strategy.ActionSet, shoeRemaining, pendingReplays int) RoundView {
	hands := make([]hand.Hand, len(r.Hands))
	for i, h := range r.Hands {
		hands[i] = h.Clone()
	}
	return RoundView{
		Number:         r.Number,
		Hands:          hands,
		Outcomes:       append([]Outcome(nil), r.Outcomes...),
		Active:         r.Active,
		Upcard:         r.Upcard,
		Legal:          legal,
		SplitDepth:     r.SplitDepth,
		Replay:         r.Replay,
		Reshuffled:     r.Reshuffled,
		ShoeRemaining:  shoeRemaining,
		PendingReplays: pendingReplays,
	}
}

// RoundView is the read-only state shown at a decision point.
type RoundView struct {
	Number         int
	Hands          []hand.Hand
	Outcomes       []Outcome
	Active         int
	Upcard         deck.Card
	Legal          strategy.ActionSet
	SplitDepth     int
	Replay         bool
	Reshuffled     bool
	ShoeRemaining  int
	PendingReplays int
}

// RoundResult is the finished round handed to presenters and observers.
type RoundResult struct {
	Number      int
	Hands       []hand.Hand
	Outcomes    []Outcome
	Upcard      deck.Card
	Dealer      hand.Hand
	DealerValue hand.Value
	Replay      bool
	Mistakes    []Mistake
}

func (r *Round) result(mistakes []Mistake) *RoundResult {
	hands := make([]hand.Hand, len(r.Hands))
	for i, h := range r.Hands {
		hands[i] = h.Clone()
	}
	return &RoundResult{
		Number:      r.Number,
		Hands:       hands,
		Outcomes:    append([]Outcome(nil), r.Outcomes...),
		Upcard:      r.Upcard,
		Dealer:      r.Dealer.Clone(),
		DealerValue: r.Dealer.Value(),
		Replay:      r.Replay,
		Mistakes:    mistakes,
	}
}

// Situation rebuilds the oracle input for the active hand from the view. The
// legal set carries the split, double and surrender flags.
func (v RoundView) Situation() strategy.Situation {
	return strategy.Situation{
		Hand:         v.Hands[v.Active],
		Upcard:       v.Upcard,
		CanSplit:     v.Legal.Has(strategy.Split),
		CanDouble:    v.Legal.Has(strategy.Double),
		CanSurrender: v.Legal.Has(strategy.Surrender),
		SplitDepth:   v.SplitDepth,
	}
}
