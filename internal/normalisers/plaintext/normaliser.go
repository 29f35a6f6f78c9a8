package plaintext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers/cleanup"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text and markdown input.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/csv",
		"text/html",
		"application/json",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts raw bytes to a cleaned plain-text document.
func (n *Normaliser) Normalise(_ context.Context, raw *driven.RawInput) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// Chunking works on runes, so invalid bytes must be replaced here;
	// otherwise chunk concatenation would not reproduce the document
	// byte-for-byte.
	text := strings.ToValidUTF8(string(raw.Content), "�")
	content := cleanup.Text(text)
	if content == "" {
		return nil, domain.ErrEmptyDocument
	}

	return &domain.Document{
		ID:      uuid.New().String(),
		URI:     raw.URI,
		Title:   cleanup.Title(raw.URI),
		Content: content,
		Metadata: map[string]any{
			"mime_type": raw.MIMEType,
		},
		CreatedAt: time.Now(),
	}, nil
}
