// Package pdf extracts text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers/cleanup"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific normaliser
}

// Normalise extracts page text and produces a cleaned document.
// Pages are separated by blank lines so downstream chunking can prefer
// page boundaries.
func (n *Normaliser) Normalise(_ context.Context, raw *driven.RawInput) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader := bytes.NewReader(raw.Content)
	r, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var pages []string
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := extractPageText(page)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	content := cleanup.Text(strings.Join(pages, "\n\n"))
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
			"pages":     r.NumPage(),
		},
		CreatedAt: time.Now(),
	}, nil
}

// extractPageText joins the rows of one page top to bottom.
func extractPageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			b.WriteString(word.S)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String()), nil
}
