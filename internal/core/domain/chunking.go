package domain

import "fmt"

// Default chunking parameters. Token counts are approximate; the budget
// only needs to stay clear of the provider context window.
const (
	// DefaultTargetTokens is the default chunk size in estimated tokens.
	DefaultTargetTokens = 1200

	// DefaultOverlapTokens is the default overlap between consecutive
	// chunks in estimated tokens.
	DefaultOverlapTokens = 150

	// DefaultCharsPerToken is the heuristic ratio for token estimation.
	DefaultCharsPerToken = 4
)

// TokenCounterKind selects the token estimation strategy.
type TokenCounterKind string

const (
	// TokenCounterHeuristic estimates tokens as characters divided by a
	// fixed ratio. Fast and dependency-free at runtime.
	TokenCounterHeuristic TokenCounterKind = "heuristic"

	// TokenCounterTiktoken counts tokens with the cl100k_base encoding.
	TokenCounterTiktoken TokenCounterKind = "tiktoken"
)

// IsValid returns true if the counter kind is recognised.
func (k TokenCounterKind) IsValid() bool {
	return k == TokenCounterHeuristic || k == TokenCounterTiktoken
}

// ChunkingConfig holds the validated chunking parameters.
// Validate must be called once at entry, before any generation work.
type ChunkingConfig struct {
	// TargetTokens is the chunk size budget in estimated tokens.
	TargetTokens int

	// OverlapTokens is the shared context between consecutive chunks
	// in estimated tokens. Must be smaller than TargetTokens.
	OverlapTokens int

	// CharsPerToken is the ratio used by the heuristic counter.
	CharsPerToken int

	// Counter selects the token estimation strategy.
	Counter TokenCounterKind
}

// DefaultChunkingConfig returns the default chunking parameters.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{
		TargetTokens:  DefaultTargetTokens,
		OverlapTokens: DefaultOverlapTokens,
		CharsPerToken: DefaultCharsPerToken,
		Counter:       TokenCounterHeuristic,
	}
}

// Validate fails fast on configurations that would loop or produce
// zero-length advances. There is no clamping: a bad config is an error.
func (c ChunkingConfig) Validate() error {
	if c.TargetTokens <= 0 {
		return fmt.Errorf("%w: target tokens must be positive, got %d", ErrInvalidChunkConfig, c.TargetTokens)
	}
	if c.OverlapTokens < 0 {
		return fmt.Errorf("%w: overlap tokens must not be negative, got %d", ErrInvalidChunkConfig, c.OverlapTokens)
	}
	if c.OverlapTokens >= c.TargetTokens {
		return fmt.Errorf("%w: overlap (%d) must be smaller than target size (%d)",
			ErrInvalidChunkConfig, c.OverlapTokens, c.TargetTokens)
	}
	if c.CharsPerToken <= 0 {
		return fmt.Errorf("%w: chars per token must be positive, got %d", ErrInvalidChunkConfig, c.CharsPerToken)
	}
	if c.Counter != "" && !c.Counter.IsValid() {
		return fmt.Errorf("%w: unknown token counter %q", ErrInvalidChunkConfig, c.Counter)
	}
	return nil
}
