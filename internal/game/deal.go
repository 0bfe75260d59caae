package game

import (
	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/hand"
)

// dealOpening draws two player cards and the dealer upcard, re-dealing plain
// hard totals with probability 1-bias so that training leans towards soft
// hands and pairs. The final attempt is kept whatever it is.
func (e *Engine) dealOpening() (hand.Hand, deck.Card, int) {
	for attempt := 1; ; attempt++ {
		player := hand.New(e.shoe.Draw(), e.shoe.Draw())
		upcard := e.shoe.Draw()

		if attempt >= e.cfg.dealAttempts || player.Value().Soft || player.IsPair() || e.rng.Float64() < e.cfg.dealBias {
			return player, upcard, attempt
		}

		e.shoe.Return(player[0], player[1], upcard)
		e.shoe.Shuffle()
	}
}

// playDealer completes the dealer hand: one hole card, then draw below 17 and
// on soft 17.
func (e *Engine) playDealer(r *Round) {
	r.Dealer = hand.New(r.Upcard, e.shoe.Draw())
	for dealerHits(r.Dealer.Value()) {
		r.Dealer = append(r.Dealer, e.shoe.Draw())
	}
}

func dealerHits(v hand.Value) bool {
	return v.Total < 17 || (v.Total == 17 && v.Soft)
}
