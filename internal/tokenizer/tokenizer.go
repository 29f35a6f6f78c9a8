// Package tokenizer provides token estimation strategies for chunking.
// Estimates are approximate; the chunk budget only needs to stay clear
// of the provider context window by a safety margin.
package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

// Encoding is the tiktoken encoding used for exact counting.
// cl100k_base matches the GPT-4/3.5 families reasonably well.
const Encoding = "cl100k_base"

// Ensure counters implement the interface.
var (
	_ driven.TokenCounter = (*HeuristicCounter)(nil)
	_ driven.TokenCounter = (*TiktokenCounter)(nil)
)

// HeuristicCounter estimates tokens as a fixed number of characters per
// token. It is monotonic in character count by construction.
type HeuristicCounter struct {
	charsPerToken int
}

// NewHeuristicCounter creates a counter with the given ratio.
// Non-positive ratios fall back to the domain default.
func NewHeuristicCounter(charsPerToken int) *HeuristicCounter {
	if charsPerToken <= 0 {
		charsPerToken = domain.DefaultCharsPerToken
	}
	return &HeuristicCounter{charsPerToken: charsPerToken}
}

// Count returns ceil(runes / charsPerToken).
func (c *HeuristicCounter) Count(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + c.charsPerToken - 1) / c.charsPerToken
}

// TiktokenCounter counts tokens with a tiktoken encoding, matching the
// tokenisation used by OpenAI models.
type TiktokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter using the cl100k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	tke, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding: %w", err)
	}
	return &TiktokenCounter{tke: tke}, nil
}

// Count returns the number of tokens in text under the encoding.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.tke.Encode(text, nil, nil))
}

// ForConfig returns the counter selected by the chunking configuration.
func ForConfig(cfg domain.ChunkingConfig) (driven.TokenCounter, error) {
	switch cfg.Counter {
	case domain.TokenCounterTiktoken:
		return NewTiktokenCounter()
	case domain.TokenCounterHeuristic, "":
		return NewHeuristicCounter(cfg.CharsPerToken), nil
	default:
		return nil, fmt.Errorf("%w: unknown token counter %q", domain.ErrInvalidChunkConfig, cfg.Counter)
	}
}
