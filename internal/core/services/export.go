package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
	"github.com/cardforge-labs/cardforge-cli/internal/exporters"
	"github.com/cardforge-labs/cardforge-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService serialises decks to flat file formats.
type ExportService struct {
	decks driven.DeckStore
}

// NewExportService creates a new export service.
func NewExportService(decks driven.DeckStore) *ExportService {
	return &ExportService{decks: decks}
}

// Export writes the deck in the given format.
func (s *ExportService) Export(ctx context.Context, deckID string, format driving.ExportFormat, w io.Writer) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}

	deck, err := s.decks.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}

	logger.Debug("Exporting deck %s (%d cards) as %s", deck.ID, len(deck.Cards), format)

	switch format {
	case driving.FormatCSV:
		return exporters.WriteCSV(w, deck)
	case driving.FormatAnki:
		return exporters.WriteAnki(w, deck)
	default:
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}
