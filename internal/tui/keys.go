package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// KeyMap defines the game's key bindings. Letters have no binding: any single
// rune is offered to the session, which ignores non-letters.
type KeyMap struct {
	Submit key.Binding
	Erase  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "erase"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc/ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Erase, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Decode maps a key press to a session event.
func (k KeyMap) Decode(msg tea.KeyMsg) (game.Event, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return game.Event{Kind: game.Quit}, true
	case key.Matches(msg, k.Submit):
		return game.Event{Kind: game.Submit}, true
	case key.Matches(msg, k.Erase):
		return game.Event{Kind: game.Backspace}, true
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		return game.Event{Kind: game.TypeChar, Char: msg.Runes[0]}, true
	}
	return game.Event{}, false
}
