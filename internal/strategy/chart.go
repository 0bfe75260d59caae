package strategy

import (
	"fmt"

	"github.com/lox/bjtrainer/internal/deck"
	"github.com/lox/bjtrainer/internal/hand"
)

// ChartTable is a printable strategy chart: one row per player hand, one
// column per dealer upcard.
type ChartTable struct {
	Title   string
	Columns []deck.Upcard
	Rows    []ChartRow
}

// ChartRow is one labelled row of chart cells.
type ChartRow struct {
	Label string
	Cells []string
}

// Cell returns the cell for a row label and upcard, or "" when absent.
func (c ChartTable) Cell(label string, up deck.Upcard) string {
	for _, row := range c.Rows {
		if row.Label != label {
			continue
		}
		for i, col := range c.Columns {
			if col == up {
				return row.Cells[i]
			}
		}
	}
	return ""
}

// Charts derives hard, soft and pair charts by asking the oracle about a
// representative first-decision hand for every cell. Cells use chart codes;
// "Ds" marks a double whose no-double fallback is stand.
func Charts() []ChartTable {
	hard := ChartTable{Title: "Hard totals", Columns: deck.Upcards}
	for total := 5; total <= 17; total++ {
		hard.Rows = append(hard.Rows, chartRow(fmt.Sprint(total), hardHand(total), false))
	}

	soft := ChartTable{Title: "Soft totals", Columns: deck.Upcards}
	for other := deck.Two; other <= deck.Nine; other++ {
		h := hand.New(card(deck.Ace), card(other))
		soft.Rows = append(soft.Rows, chartRow(fmt.Sprintf("A,%s", other), h, false))
	}

	pairs := ChartTable{Title: "Pairs", Columns: deck.Upcards}
	for _, r := range []deck.Rank{deck.Ace, deck.Ten, deck.Nine, deck.Eight, deck.Seven, deck.Six, deck.Five, deck.Four, deck.Three, deck.Two} {
		label := pairLabel(r)
		pairs.Rows = append(pairs.Rows, chartRow(label+","+label, hand.New(card(r), card(r)), true))
	}

	return []ChartTable{hard, soft, pairs}
}

func chartRow(label string, h hand.Hand, canSplit bool) ChartRow {
	row := ChartRow{Label: label}
	for _, up := range deck.Upcards {
		row.Cells = append(row.Cells, chartCell(h, upcardCard(up), canSplit))
	}
	return row
}

func chartCell(h hand.Hand, up deck.Card, canSplit bool) string {
	s := Situation{Hand: h, Upcard: up, CanSplit: canSplit, CanDouble: true, CanSurrender: true}
	a := Advise(s).Action
	if a != Double {
		return a.Code()
	}
	s.CanDouble = false
	if Advise(s).Action == Stand {
		return "Ds"
	}
	return "D"
}

// hardHand builds a two-card non-pair hand without aces for totals 5 to 20.
func hardHand(total int) hand.Hand {
	if total >= 12 {
		return hand.New(card(deck.Ten), card(deck.Rank(total-10)))
	}
	return hand.New(card(deck.Two), card(deck.Rank(total-2)))
}

func card(r deck.Rank) deck.Card {
	return deck.NewCard(deck.Spades, r)
}

func upcardCard(u deck.Upcard) deck.Card {
	if u == deck.UpcardAce {
		return card(deck.Ace)
	}
	return card(deck.Rank(u))
}
