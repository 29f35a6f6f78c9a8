package driving

import (
	"context"
	"io"
)

// ExportFormat identifies an export serialisation.
type ExportFormat string

const (
	// FormatCSV is `front,back` with a header row and RFC 4180 quoting.
	FormatCSV ExportFormat = "csv"

	// FormatAnki is tab-separated `front\tback` lines without a header.
	FormatAnki ExportFormat = "anki"
)

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	return f == FormatCSV || f == FormatAnki
}

// Extension returns the conventional file extension for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatAnki:
		return ".txt"
	default:
		return ""
	}
}

// ExportService serialises decks to flat file formats.
type ExportService interface {
	// Export writes the deck in the given format.
	// Exporting an empty deck returns domain.ErrEmptyDeck; callers
	// surface it as a notice rather than a failure.
	Export(ctx context.Context, deckID string, format ExportFormat, w io.Writer) error
}
