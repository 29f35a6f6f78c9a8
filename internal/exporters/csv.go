// Package exporters serialises decks to flat file formats.
package exporters

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// WriteCSV writes the deck as `front,back` rows with a header.
// encoding/csv applies RFC 4180 quoting, so embedded commas, quotes,
// and newlines round-trip.
func WriteCSV(w io.Writer, deck *domain.Deck) error {
	if deck == nil || len(deck.Cards) == 0 {
		return domain.ErrEmptyDeck
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"front", "back"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, card := range deck.Cards {
		if err := cw.Write([]string{card.Front, card.Back}); err != nil {
			return fmt.Errorf("write card %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
