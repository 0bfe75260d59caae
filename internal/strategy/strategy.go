// Package strategy is the basic strategy oracle for six-deck blackjack where
// the dealer hits soft 17 and late surrender is offered.
//
// Advise walks the rules in a fixed order and the first applicable rule wins:
//
//  1. surrender, for a hard two-card 15, 16 or 17 when surrender is legal
//  2. split, for a legal pair (fives are played as a hard ten)
//  3. soft totals up to 20
//  4. hard totals
//
// The order is part of the contract: a pair of eights against a ten is a hard
// 16 and surrenders before the split rule is consulted.
package strategy

import (
	"fmt"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/hand"
)

// MaxSplitDepth is the number of splits allowed per round (four hands).
const MaxSplitDepth = 3

// Situation is everything the oracle needs at one decision point.
type Situation struct {
	Hand         hand.Hand
	Upcard       deck.Card
	CanSplit     bool
	CanDouble    bool
	CanSurrender bool
	SplitDepth   int
}

// Legal returns the action set the situation allows. Hit and stand are
// always legal.
func (s Situation) Legal() ActionSet {
	set := NewActionSet(Hit, Stand)
	if s.CanDouble {
		set = set.With(Double)
	}
	if s.CanSplit {
		set = set.With(Split)
	}
	if s.CanSurrender {
		set = set.With(Surrender)
	}
	return set
}

// Chart identifies which part of the strategy produced an answer.
type Chart int

const (
	HardChart Chart = iota
	SoftChart
	PairChart
	SurrenderChart
)

func (c Chart) String() string {
	switch c {
	case HardChart:
		return "hard"
	case SoftChart:
		return "soft"
	case PairChart:
		return "pair"
	case SurrenderChart:
		return "surrender"
	default:
		return "unknown"
	}
}

// Advice is the oracle's answer together with the rule that produced it.
type Advice struct {
	Action Action
	Chart  Chart
	// Row is the chart row: a total for hard, soft and surrender, or the pair
	// rank for pairs.
	Row    string
	Upcard deck.Upcard
	// Fallback is set when the chart said double but doubling was not legal.
	Fallback bool
}

func (a Advice) String() string {
	var row string
	switch a.Chart {
	case PairChart:
		row = fmt.Sprintf("pair of %ss", a.Row)
	case SurrenderChart:
		row = "hard " + a.Row
	default:
		row = a.Chart.String() + " " + a.Row
	}
	s := fmt.Sprintf("%s vs %s: %s", row, a.Upcard, a.Action)
	if a.Fallback {
		s += " (double not allowed)"
	}
	return s
}

// Decide returns the correct action for a decision point.
func Decide(h hand.Hand, upcard deck.Card, canSplit, canDouble, canSurrender bool, splitDepth int) Action {
	return Advise(Situation{
		Hand:         h,
		Upcard:       upcard,
		CanSplit:     canSplit,
		CanDouble:    canDouble,
		CanSurrender: canSurrender,
		SplitDepth:   splitDepth,
	}).Action
}

// Advise returns the correct action and the rule behind it. It is total over
// any non-empty hand: every path ends in a default.
func Advise(s Situation) Advice {
	v := s.Hand.Value()
	up := s.Upcard.Upcard()
	two := len(s.Hand) == 2

	if s.CanSurrender && two && !v.Soft {
		if surrenderTable[v.Total][up] == entrySurrender {
			return Advice{Action: Surrender, Chart: SurrenderChart, Row: fmt.Sprint(v.Total), Upcard: up}
		}
	}

	if s.CanSplit && s.Hand.IsPair() && s.SplitDepth < MaxSplitDepth {
		rank := s.Hand[0].PairRank()
		if e, ok := pairTable[rank][up]; ok {
			advice := Advice{Chart: PairChart, Row: pairLabel(rank), Upcard: up}
			if rank == deck.Five {
				advice.Action, advice.Fallback = entryDouble.resolve(s.CanDouble)
				return advice
			}
			if e == entrySplit {
				advice.Action = Split
				return advice
			}
		}
	}

	if v.Soft && v.Total <= 20 {
		advice := Advice{Chart: SoftChart, Row: fmt.Sprint(v.Total), Upcard: up}
		if e, ok := softTable[v.Total][up]; ok {
			advice.Action, advice.Fallback = e.resolve(s.CanDouble)
			return advice
		}
		if v.Total <= 17 {
			advice.Action = Hit
		} else {
			advice.Action = Stand
		}
		return advice
	}

	advice := Advice{Chart: HardChart, Row: fmt.Sprint(v.Total), Upcard: up}
	switch {
	case v.Total <= 8:
		advice.Action = Hit
	case v.Total >= 17:
		advice.Action = Stand
	default:
		advice.Action = Hit
		if e, ok := hardTable[v.Total][up]; ok {
			advice.Action, advice.Fallback = e.resolve(s.CanDouble)
		}
	}
	return advice
}

func pairLabel(r deck.Rank) string {
	if r == deck.Ten {
		return "10"
	}
	return r.String()
}
