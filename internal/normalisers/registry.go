// Package normalisers provides format-specific text extraction and the
// registry that selects a normaliser for an input.
package normalisers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers/docx"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers/pdf"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers/plaintext"
)

// Registry selects a normaliser for an input by MIME type and priority.
type Registry struct {
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with all built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(n driven.Normaliser) {
	r.normalisers = append(r.normalisers, n)
}

// ForMIMEType returns the highest-priority normaliser supporting the
// MIME type, falling back to the plain text normaliser for unknown
// text-like types.
func (r *Registry) ForMIMEType(mimeType string) (driven.Normaliser, error) {
	var best driven.Normaliser
	for _, n := range r.normalisers {
		for _, mt := range n.SupportedMIMETypes() {
			if mt != mimeType {
				continue
			}
			if best == nil || n.Priority() > best.Priority() {
				best = n
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no normaliser for %q", domain.ErrUnsupportedType, mimeType)
	}
	return best, nil
}

// DetectMIMEType implements the services.NormaliserRegistry interface.
func (r *Registry) DetectMIMEType(path string) string {
	return DetectMIMEType(path)
}

// extensionMIMETypes maps known input extensions to MIME types.
var extensionMIMETypes = map[string]string{
	".txt":  "text/plain",
	".text": "text/plain",
	".md":   "text/markdown",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// DetectMIMEType guesses the MIME type from the file extension.
// Unknown extensions are treated as plain text so pasted notes with odd
// names still work.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := extensionMIMETypes[ext]; ok {
		return mt
	}
	return "text/plain"
}
