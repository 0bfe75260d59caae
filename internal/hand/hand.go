// Package hand implements blackjack hand arithmetic: best totals with soft-ace
// accounting and pair detection.
package hand

import (
	"fmt"
	"strings"

	"github.com/lox/bjtrainer/internal/deck"
)

// Hand is an ordered run of cards belonging to one player position or the
// dealer.
type Hand []deck.Card

// Value is the best total of a hand and whether an ace still counts as 11 in it.
type Value struct {
	Total int
	Soft  bool
}

func (v Value) String() string {
	if v.Soft {
		return fmt.Sprintf("soft %d", v.Total)
	}
	return fmt.Sprintf("hard %d", v.Total)
}

// Bust reports whether the total exceeds 21.
func (v Value) Bust() bool {
	return v.Total > 21
}

// New builds a hand from cards.
func New(cards ...deck.Card) Hand {
	return Hand(append([]deck.Card(nil), cards...))
}

// Value counts every ace as 11, then demotes aces to 1 one at a time while the
// total exceeds 21.
func (h Hand) Value() Value {
	total, aces := 0, 0
	for _, c := range h {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return Value{Total: total, Soft: aces > 0}
}

// IsPair reports whether the hand is exactly two cards of the same pair rank.
// Ten-valued cards pair with each other.
func (h Hand) IsPair() bool {
	return len(h) == 2 && h[0].PairRank() == h[1].PairRank()
}

// Clone returns a deep copy that shares no storage with h.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	return append(Hand(nil), h...)
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
