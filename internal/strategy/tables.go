package strategy

import "github.com/lox/bjtrainer/internal/deck"

// entry is a raw chart cell.
type entry uint8

const (
	entryNone entry = iota
	entryHit
	entryStand
	entryDouble       // double if allowed, otherwise hit
	entryDoubleStand  // double if allowed, otherwise stand
	entrySplit
	entrySurrender
)

// Basic strategy for six decks, dealer hits soft 17, late surrender.
// Columns are normalised dealer upcards; a missing cell falls through to the
// defaults in Advise.

var surrenderTable = map[int]map[deck.Upcard]entry{
	15: {10: entrySurrender},
	16: {9: entrySurrender, 10: entrySurrender, deck.UpcardAce: entrySurrender},
	17: {deck.UpcardAce: entrySurrender},
}

var pairTable = map[deck.Rank]map[deck.Upcard]entry{
	deck.Two:   {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit, 7: entrySplit},
	deck.Three: {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit, 7: entrySplit},
	deck.Four:  {5: entrySplit, 6: entrySplit},
	deck.Five:  {2: entryDouble, 3: entryDouble, 4: entryDouble, 5: entryDouble, 6: entryDouble, 7: entryDouble, 8: entryDouble, 9: entryDouble},
	deck.Six:   {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit},
	deck.Seven: {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit, 7: entrySplit},
	deck.Eight: {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit, 7: entrySplit, 8: entrySplit, 9: entrySplit, 10: entrySplit, deck.UpcardAce: entrySplit},
	deck.Nine:  {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit, 8: entrySplit, 9: entrySplit},
	deck.Ten:   {},
	deck.Ace:   {2: entrySplit, 3: entrySplit, 4: entrySplit, 5: entrySplit, 6: entrySplit, 7: entrySplit, 8: entrySplit, 9: entrySplit, 10: entrySplit, deck.UpcardAce: entrySplit},
}

var softTable = map[int]map[deck.Upcard]entry{
	13: {5: entryDouble, 6: entryDouble},
	14: {5: entryDouble, 6: entryDouble},
	15: {4: entryDouble, 5: entryDouble, 6: entryDouble},
	16: {4: entryDouble, 5: entryDouble, 6: entryDouble},
	17: {3: entryDouble, 4: entryDouble, 5: entryDouble, 6: entryDouble},
	18: {2: entryDoubleStand, 3: entryDoubleStand, 4: entryDoubleStand, 5: entryDoubleStand, 6: entryDoubleStand, 9: entryHit, 10: entryHit, deck.UpcardAce: entryHit},
	19: {6: entryDoubleStand},
	20: {},
}

var hardTable = map[int]map[deck.Upcard]entry{
	8:  {},
	9:  {3: entryDouble, 4: entryDouble, 5: entryDouble, 6: entryDouble},
	10: {2: entryDouble, 3: entryDouble, 4: entryDouble, 5: entryDouble, 6: entryDouble, 7: entryDouble, 8: entryDouble, 9: entryDouble},
	11: {2: entryDouble, 3: entryDouble, 4: entryDouble, 5: entryDouble, 6: entryDouble, 7: entryDouble, 8: entryDouble, 9: entryDouble, 10: entryDouble, deck.UpcardAce: entryDouble},
	12: {4: entryStand, 5: entryStand, 6: entryStand},
	13: {2: entryStand, 3: entryStand, 4: entryStand, 5: entryStand, 6: entryStand},
	14: {2: entryStand, 3: entryStand, 4: entryStand, 5: entryStand, 6: entryStand},
	15: {2: entryStand, 3: entryStand, 4: entryStand, 5: entryStand, 6: entryStand},
	16: {2: entryStand, 3: entryStand, 4: entryStand, 5: entryStand, 6: entryStand},
	17: {},
}

// resolve turns a cell into an action given whether doubling is allowed.
func (e entry) resolve(canDouble bool) (Action, bool) {
	switch e {
	case entryHit:
		return Hit, false
	case entryStand:
		return Stand, false
	case entrySplit:
		return Split, false
	case entrySurrender:
		return Surrender, false
	case entryDouble:
		if canDouble {
			return Double, false
		}
		return Hit, true
	case entryDoubleStand:
		if canDouble {
			return Double, false
		}
		return Stand, true
	default:
		return NoAction, false
	}
}
