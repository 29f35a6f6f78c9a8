// Package docx extracts text from DOCX documents.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/google/uuid"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers/cleanup"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific normaliser
}

// Normalise extracts paragraph and table text into a cleaned document.
func (n *Normaliser) Normalise(_ context.Context, raw *driven.RawInput) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader := bytes.NewReader(raw.Content)
	doc, err := docx.Parse(reader, reader.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var parts []string
	for _, it := range doc.Document.Body.Items {
		var text string
		switch t := it.(type) {
		case *docx.Paragraph:
			text = t.String()
		case *docx.Table:
			text = t.String()
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	content := cleanup.Text(strings.Join(parts, "\n\n"))
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
