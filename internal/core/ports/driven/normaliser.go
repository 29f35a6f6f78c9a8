package driven

import (
	"context"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// RawInput is an unparsed input file or paste, before normalisation.
type RawInput struct {
	// URI is the original location (file path, or "-" for stdin).
	URI string

	// MIMEType identifies the content format.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Normaliser transforms raw input into a plain-text document.
// Each normaliser handles specific MIME types (e.g., PDF, DOCX).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts and cleans the text content.
	Normalise(ctx context.Context, raw *RawInput) (*domain.Document, error)
}
