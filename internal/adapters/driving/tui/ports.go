// Package tui provides the interactive terminal interface for studying
// and editing decks. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Deck manages stored decks and card edits.
	Deck driving.DeckService

	// Export serialises decks to flat files. Optional; the browse view
	// disables its export action when nil.
	Export driving.ExportService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(deck driving.DeckService, export driving.ExportService) *Ports {
	return &Ports{
		Deck:   deck,
		Export: export,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Deck == nil {
		return ErrMissingDeckService
	}
	return nil
}
