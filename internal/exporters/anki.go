package exporters

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// tsvSanitiser removes characters that would break the line-oriented
// tab-separated format. Literal tabs in card text cannot be represented
// and are replaced with spaces; this is a documented limitation.
var tsvSanitiser = strings.NewReplacer(
	"\t", " ",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// WriteAnki writes the deck as tab-separated `front\tback` lines with
// no header, the import format Anki expects for basic notes.
func WriteAnki(w io.Writer, deck *domain.Deck) error {
	if deck == nil || len(deck.Cards) == 0 {
		return domain.ErrEmptyDeck
	}

	bw := bufio.NewWriter(w)
	for i, card := range deck.Cards {
		front := tsvSanitiser.Replace(card.Front)
		back := tsvSanitiser.Replace(card.Back)
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", front, back); err != nil {
			return fmt.Errorf("write card %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
