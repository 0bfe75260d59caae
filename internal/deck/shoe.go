package deck

import (
	rand "math/rand/v2"
)

const (
	// DecksPerShoe is the number of 52-card decks in a full shoe.
	DecksPerShoe = 6
	// ShoeSize is the card count of a freshly refilled shoe.
	ShoeSize = DecksPerShoe * 52
	// ReshuffleThreshold is the card count below which a round refills the shoe
	// before dealing.
	ReshuffleThreshold = 52
)

// Shoe is a multi-deck card supply consumed from the front.
// A Shoe is not safe for concurrent use; it belongs to one round loop.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe returns a full, shuffled six-deck shoe.
func NewShoe(rng *rand.Rand) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	s := &Shoe{rng: rng}
	s.Refill()
	return s
}

// NewShoeFromCards returns a shoe that deals the given cards in order. Once it
// drops below the reshuffle threshold it refills from rng like any other shoe.
func NewShoeFromCards(rng *rand.Rand, cards []Card) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	return &Shoe{
		cards: append([]Card(nil), cards...),
		rng:   rng,
	}
}

// Refill replaces the contents with DecksPerShoe fresh decks and shuffles them.
func (s *Shoe) Refill() {
	cards := make([]Card, 0, ShoeSize)
	for range DecksPerShoe {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}
	s.cards = cards
	s.Shuffle()
}

// Shuffle permutes the remaining cards uniformly (Fisher-Yates).
func (s *Shoe) Shuffle() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// EnsureDealable refills the shoe when fewer than ReshuffleThreshold cards
// remain. It reports whether a refill happened.
func (s *Shoe) EnsureDealable() bool {
	if len(s.cards) >= ReshuffleThreshold {
		return false
	}
	s.Refill()
	return true
}

// Draw removes and returns the next card. An empty shoe is refilled first; with
// EnsureDealable called before each round this never happens mid-hand.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.Refill()
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

// DrawN draws n cards in order.
func (s *Shoe) DrawN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = s.Draw()
	}
	return cards
}

// Return puts cards back into the shoe. Callers shuffle afterwards if the
// returned cards must not come straight back out.
func (s *Shoe) Return(cards ...Card) {
	s.cards = append(s.cards, cards...)
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}
