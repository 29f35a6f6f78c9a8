package postprocessors

import (
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/postprocessors/chunker"
	"github.com/cardforge-labs/cardforge-cli/internal/tokenizer"
)

// DefaultPipeline builds the standard chunking pipeline for a run.
// The chunking configuration is validated here, before any generation
// work starts.
func DefaultPipeline(cfg domain.ChunkingConfig) (*Pipeline, error) {
	counter, err := tokenizer.ForConfig(cfg)
	if err != nil {
		return nil, err
	}

	proc, err := chunker.New(cfg, counter)
	if err != nil {
		return nil, err
	}

	return NewPipeline(proc), nil
}

// Ensure the chunker satisfies the processor port.
var _ driven.PostProcessor = (*chunker.Processor)(nil)
