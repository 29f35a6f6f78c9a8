// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewStudy is the flip-and-grade study session view.
	ViewStudy ViewType = iota
	// ViewBrowse is the card list and editing view.
	ViewBrowse
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewStudy:
		return "study"
	case ViewBrowse:
		return "browse"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DeckLoaded carries the deck from the deck service.
type DeckLoaded struct {
	Deck *domain.Deck
	Err  error
}

// CardSaved signals a card edit was persisted.
type CardSaved struct {
	Card domain.Card
	Err  error
}

// CardDeleted signals a card was removed from its deck.
type CardDeleted struct {
	CardID string
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
