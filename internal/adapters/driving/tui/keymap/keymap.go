// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Flip reveals the answer side of the current card.
	Flip key.Binding

	// Correct grades the flipped card as known.
	Correct key.Binding

	// NeedsReview grades the flipped card as needing another pass.
	NeedsReview key.Binding

	// Prev steps back to the previous card.
	Prev key.Binding

	// Shuffle restarts the session in a new random order.
	Shuffle key.Binding

	// Restart restarts the session keeping the current order.
	Restart key.Binding

	// Edit opens the selected card for editing.
	Edit key.Binding

	// Delete removes the selected card.
	Delete key.Binding

	// Save confirms an edit.
	Save key.Binding

	// NextField moves focus between edit fields.
	NextField key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "show answer"),
		),
		Correct: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "correct"),
		),
		NeedsReview: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "needs review"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "previous"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}

// StudyHelp returns keybindings shown in the study view footer.
func (k *KeyMap) StudyHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Correct, k.NeedsReview, k.Prev, k.Shuffle, k.Quit}
}

// BrowseHelp returns keybindings shown in the browse view footer.
func (k *KeyMap) BrowseHelp() []key.Binding {
	return []key.Binding{k.Up, k.Edit, k.Delete, k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
