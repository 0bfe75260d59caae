package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/hand"
)

func h(s string) hand.Hand {
	return hand.New(deck.MustParseCards(s)...)
}

func up(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}

// first returns a situation for an unsplit two-card hand with every option open.
func first(cards, dealer string) Situation {
	hh := h(cards)
	return Situation{
		Hand:         hh,
		Upcard:       up(dealer),
		CanSplit:     hh.IsPair(),
		CanDouble:    true,
		CanSurrender: true,
	}
}

func TestAdvisePrecedence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		s    Situation
		want Action
	}{
		{"hard 15 vs ten surrenders", first("Ts5h", "Kd"), Surrender},
		{"hard 16 vs ten surrenders", first("Ts6h", "Td"), Surrender},
		{"pair of eights vs ten surrenders before splitting", first("8s8h", "Td"), Surrender},
		{"pair of eights vs ace surrenders before splitting", first("8s8h", "Ad"), Surrender},
		{"pair of eights vs six splits", first("8s8h", "6d"), Split},
		{"hard 17 vs ace surrenders", first("Ts7h", "Ad"), Surrender},
		{"hard 16 vs nine surrenders", first("9s7h", "9d"), Surrender},
		{"hard 15 vs nine hits", first("9s6h", "9d"), Hit},
		{"soft hands never surrender", first("As5h", "Td"), Hit},
		{"fives double vs six", first("5s5h", "6d"), Double},
		{"fives vs ten play as hard ten", first("5s5h", "Td"), Hit},
		{"tens never split", first("TsKh", "6d"), Stand},
		{"aces split vs ace", first("AsAh", "Ad"), Split},
		{"nines stand vs seven", first("9s9h", "7d"), Stand},
		{"nines split vs eight", first("9s9h", "8d"), Split},
		{"fours split vs five", first("4s4h", "5d"), Split},
		{"fours vs four play as hard eight", first("4s4h", "4d"), Hit},
		{"soft 18 vs two doubles", first("As7h", "2d"), Double},
		{"soft 18 vs seven stands", first("As7h", "7d"), Stand},
		{"soft 18 vs nine hits", first("As7h", "9d"), Hit},
		{"soft 19 vs six doubles", first("As8h", "6d"), Double},
		{"soft 19 vs five stands", first("As8h", "5d"), Stand},
		{"soft 17 vs three doubles", first("As6h", "3d"), Double},
		{"soft 17 vs two hits", first("As6h", "2d"), Hit},
		{"soft 13 vs five doubles", first("As2h", "5d"), Double},
		{"hard 11 vs ace doubles", first("6s5h", "Ad"), Double},
		{"hard 10 vs ten hits", first("6s4h", "Td"), Hit},
		{"hard 9 vs two hits", first("6s3h", "2d"), Hit},
		{"hard 9 vs three doubles", first("6s3h", "3d"), Double},
		{"hard 12 vs three hits", first("Ts2h", "3d"), Hit},
		{"hard 12 vs four stands", first("Ts2h", "4d"), Stand},
		{"hard 8 hits", first("5s3h", "6d"), Hit},
		{"hard 17 vs ten stands", first("Ts7h", "Td"), Stand},
		{"blackjack stands", first("AsKh", "Td"), Stand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Advise(tt.s).Action)
		})
	}
}

func TestDoubleFallbacks(t *testing.T) {
	t.Parallel()

	// Soft 18 vs 2 is double-else-stand.
	assert.Equal(t, Double, Decide(h("As7h"), up("2d"), false, true, false, 0))
	advice := Advise(Situation{Hand: h("As7h"), Upcard: up("2d")})
	assert.Equal(t, Stand, advice.Action)
	assert.True(t, advice.Fallback)

	// Soft 17 vs 4 is double-else-hit.
	assert.Equal(t, Hit, Decide(h("As6h"), up("4d"), false, false, false, 0))

	// Three-card hard 11 cannot double so it hits.
	assert.Equal(t, Hit, Decide(h("2s4h5d"), up("6d"), false, false, false, 0))

	// Fives without the double option hit.
	assert.Equal(t, Hit, Decide(h("5s5h"), up("6d"), true, false, false, 0))

	// Three-card soft 18 vs 9 hits; vs 3 stands.
	assert.Equal(t, Hit, Decide(h("As3h4d"), up("9d"), false, false, false, 0))
	assert.Equal(t, Stand, Decide(h("As3h4d"), up("3d"), false, false, false, 0))
}

func TestSplitGates(t *testing.T) {
	t.Parallel()

	// Split depth exhausted: eights vs 6 are played as hard 16.
	assert.Equal(t, Stand, Decide(h("8s8h"), up("6d"), true, true, false, MaxSplitDepth))
	// Split not offered.
	assert.Equal(t, Stand, Decide(h("8s8h"), up("6d"), false, true, false, 0))
	// Eights vs ten with surrender gone split.
	assert.Equal(t, Split, Decide(h("8s8h"), up("Td"), true, true, false, 1))
	// Aces that cannot split are a soft 12.
	assert.Equal(t, Hit, Decide(h("AsAh"), up("6d"), false, true, false, MaxSplitDepth))
	// Mixed tens are a pair for the oracle.
	assert.Equal(t, Stand, Decide(h("JsQh"), up("6d"), true, true, true, 0))
}

func TestSurrenderRequiresTwoCards(t *testing.T) {
	t.Parallel()
	s := Situation{Hand: h("Ts3h3d"), Upcard: up("Td"), CanSurrender: true}
	assert.Equal(t, Hit, Advise(s).Action)
}

// The oracle must be total and only ever return a legal action.
func TestAdviseIsTotalAndLegal(t *testing.T) {
	t.Parallel()
	for r1 := deck.Two; r1 <= deck.Ace; r1++ {
		for r2 := deck.Two; r2 <= deck.Ace; r2++ {
			for _, u := range deck.Upcards {
				for mask := 0; mask < 8; mask++ {
					hh := hand.New(deck.NewCard(deck.Spades, r1), deck.NewCard(deck.Hearts, r2))
					s := Situation{
						Hand:         hh,
						Upcard:       upcardCard(u),
						CanSplit:     mask&1 != 0 && hh.IsPair(),
						CanDouble:    mask&2 != 0,
						CanSurrender: mask&4 != 0,
					}
					a := Advise(s)
					require.NotEqual(t, NoAction, a.Action, "%s vs %s", hh, u)
					require.True(t, s.Legal().Has(a.Action), "%s vs %s mask %d: %s not legal", hh, u, mask, a.Action)
				}
			}
		}
	}
}

func TestAdviceString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hard 16 vs 10: surrender", Advise(first("Ts6h", "Kd")).String())
	assert.Equal(t, "pair of 8s vs 6: split", Advise(first("8s8h", "6d")).String())
	assert.Equal(t, "soft 18 vs A: hit", Advise(first("As7h", "Ad")).String())
	assert.Equal(t, "soft 18 vs 3: stand (double not allowed)",
		Advise(Situation{Hand: h("As7h"), Upcard: up("3d")}).String())
}

func TestActionSet(t *testing.T) {
	t.Parallel()
	set := NewActionSet(Hit, Stand, Surrender)
	assert.True(t, set.Has(Hit))
	assert.True(t, set.Has(Surrender))
	assert.False(t, set.Has(Double))
	assert.False(t, set.Has(NoAction))
	assert.Equal(t, []Action{Hit, Stand, Surrender}, set.List())
	assert.Equal(t, "{hit,stand,surrender}", set.String())
	assert.Equal(t, set, set.With(NoAction))
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	for _, a := range Actions {
		assert.Equal(t, a, ParseAction(a.String()))
		assert.Equal(t, a, ParseAction(a.Code()))
	}
	assert.Equal(t, NoAction, ParseAction("fold"))
}
