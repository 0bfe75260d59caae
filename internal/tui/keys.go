package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/lox/bjtrainer/internal/strategy"
)

type keyMap struct {
	Hit       key.Binding
	Stand     key.Binding
	Double    key.Binding
	Split     key.Binding
	Surrender key.Binding
	Continue  key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hit:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		Double:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double")),
		Split:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "split")),
		Surrender: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "surrender")),
		Continue:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "continue")),
		ScrollUp:  key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "scroll up")),
		ScrollDn:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "scroll down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// setDecision enables the action keys that are legal right now and the
// continue key when an acknowledgement is pending.
func (k *keyMap) setDecision(legal strategy.ActionSet, awaitingAck bool) {
	k.Hit.SetEnabled(legal.Has(strategy.Hit))
	k.Stand.SetEnabled(legal.Has(strategy.Stand))
	k.Double.SetEnabled(legal.Has(strategy.Double))
	k.Split.SetEnabled(legal.Has(strategy.Split))
	k.Surrender.SetEnabled(legal.Has(strategy.Surrender))
	k.Continue.SetEnabled(awaitingAck)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.Double, k.Split, k.Surrender, k.Continue, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stand, k.Double, k.Split, k.Surrender},
		{k.Continue, k.ScrollUp, k.ScrollDn},
		{k.Help, k.Quit},
	}
}
