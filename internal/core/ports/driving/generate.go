package driving

import (
	"context"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// GenerateOptions configures one generation run.
type GenerateOptions struct {
	// DeckName names the produced deck. Defaults to the document title.
	DeckName string

	// Cards is the target number of cards for the whole document.
	// Zero uses the configured default.
	Cards int

	// Chunking overrides the configured chunking parameters when set.
	Chunking *domain.ChunkingConfig
}

// ChunkProgress reports per-chunk completion during a run.
// Callbacks are invoked in completion order, which may differ from chunk
// order when requests run concurrently.
type ChunkProgress func(position, total, cards int, err error)

// GenerateService turns an input file or paste into a deck of cards.
type GenerateService interface {
	// GenerateFromFile reads, normalises, chunks, and generates cards
	// from the file at path ("-" reads stdin).
	GenerateFromFile(ctx context.Context, path string, opts GenerateOptions) (*domain.GenerationReport, error)

	// GenerateFromText runs the same pipeline on already-extracted text.
	GenerateFromText(ctx context.Context, title, text string, opts GenerateOptions) (*domain.GenerationReport, error)

	// SetProgress installs a progress callback for subsequent runs.
	SetProgress(fn ChunkProgress)
}
