// Package chunker provides a token-budget text chunking processor with
// overlap between consecutive chunks.
package chunker

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/tokenizer"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor splits document content into overlapping windows sized by an
// approximate token budget. Chunking is deterministic: the same text and
// configuration always produce the same chunks, and concatenating each
// chunk's non-overlapping suffix reconstructs the text exactly.
type Processor struct {
	target  int
	overlap int
	counter driven.TokenCounter
}

// New creates a chunker from a validated configuration. Invalid
// configurations (overlap >= target, non-positive sizes) fail here,
// before any generation work starts.
func New(cfg domain.ChunkingConfig, counter driven.TokenCounter) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if counter == nil {
		counter = tokenizer.NewHeuristicCounter(cfg.CharsPerToken)
	}
	return &Processor{
		target:  cfg.TargetTokens,
		overlap: cfg.OverlapTokens,
		counter: counter,
	}, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	runes := []rune(doc.Content)

	// Whole text within budget: exactly one chunk.
	if total := p.counter.Count(doc.Content); total <= p.target {
		return []domain.Chunk{{
			ID:            uuid.New().String(),
			DocumentID:    doc.ID,
			Content:       doc.Content,
			Position:      0,
			TokenEstimate: total,
		}}, nil
	}

	var chunks []domain.Chunk
	start := 0
	prevEnd := 0
	position := 0

	for start < len(runes) {
		end := p.windowEnd(runes, start)
		content := string(runes[start:end])

		chunk := domain.Chunk{
			ID:            uuid.New().String(),
			DocumentID:    doc.ID,
			Content:       content,
			Position:      position,
			TokenEstimate: p.counter.Count(content),
		}
		if position > 0 {
			chunk.OverlapRunes = prevEnd - start
		}
		chunks = append(chunks, chunk)
		position++

		if end >= len(runes) {
			break
		}

		next := p.overlapStart(runes, end)
		// Guarantee forward progress even for degenerate counters.
		if next <= start {
			next = start + 1
		}
		prevEnd = end
		start = next
	}

	return chunks, nil
}

// windowEnd returns the largest end such that runes[start:end] fits the
// token budget. At least one rune is always consumed. Relies on the
// counter being monotonic in text length.
func (p *Processor) windowEnd(runes []rune, start int) int {
	lo, hi := start+1, len(runes)
	if p.counter.Count(string(runes[start:hi])) <= p.target {
		return hi
	}
	// Invariant: count(runes[start:lo]) <= target < count(runes[start:hi]).
	if p.counter.Count(string(runes[start:lo])) > p.target {
		return lo
	}
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if p.counter.Count(string(runes[start:mid])) <= p.target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// overlapStart returns the start of the next chunk: the position that
// puts an estimated overlap-size run of tokens before end.
func (p *Processor) overlapStart(runes []rune, end int) int {
	if p.overlap == 0 {
		return end
	}
	// Find the longest suffix of runes[:end] within the overlap budget.
	lo, hi := 0, end
	if p.counter.Count(string(runes[0:end])) <= p.overlap {
		return 0
	}
	// Invariant: count(runes[end-lo:end]) <= overlap < count(runes[end-hi:end]).
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if p.counter.Count(string(runes[end-mid:end])) <= p.overlap {
			lo = mid
		} else {
			hi = mid
		}
	}
	return end - lo
}
