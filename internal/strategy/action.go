package strategy

import "strings"

// Action is a player decision at a blackjack decision point.
type Action int

const (
	// NoAction is the zero value; the oracle never returns it.
	NoAction Action = iota
	// Hit takes one more card
	Hit
	// Stand keeps the current total
	Stand
	// Double takes exactly one more card and ends the hand
	Double
	// Split turns a pair into two hands
	Split
	// Surrender gives up the original two-card hand
	Surrender
)

// Actions lists every real action in display order.
var Actions = []Action{Hit, Stand, Double, Split, Surrender}

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Code returns the single-letter chart code (H, S, D, P, R).
func (a Action) Code() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	case Surrender:
		return "R"
	default:
		return "?"
	}
}

// ParseAction converts a word or chart code to an Action. Unknown input yields
// NoAction, which no legal set contains.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hit":
		return Hit
	case "s", "stand":
		return Stand
	case "d", "double":
		return Double
	case "p", "split":
		return Split
	case "r", "surrender":
		return Surrender
	default:
		return NoAction
	}
}

// ActionSet is a small bit set of actions.
type ActionSet uint8

// NewActionSet returns a set containing actions.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With returns s plus a.
func (s ActionSet) With(a Action) ActionSet {
	if a == NoAction {
		return s
	}
	return s | 1<<uint(a)
}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	return a != NoAction && s&(1<<uint(a)) != 0
}

// List returns the members in display order.
func (s ActionSet) List() []Action {
	var out []Action
	for _, a := range Actions {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s ActionSet) String() string {
	names := make([]string, 0, 5)
	for _, a := range s.List() {
		names = append(names, a.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
