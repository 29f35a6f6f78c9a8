package driven

import "context"

// CardGenerator produces flashcards from chunk text via an LLM provider.
//
// Implementations may include:
//   - OpenAI (GPT-4o family, or any compatible chat-completions server)
//   - Anthropic (Claude)
//   - Ollama (local models)
type CardGenerator interface {
	// GenerateCards sends one chunk's text with the card prompt template
	// and returns the raw model reply. Parsing is the caller's concern.
	GenerateCards(ctx context.Context, req CardRequest) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CardRequest carries one chunk's generation parameters.
type CardRequest struct {
	// ChunkText is the source text for this request.
	ChunkText string

	// CardCount is the number of cards requested from this chunk.
	CardCount int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// MaxTokens caps the reply length. Zero lets the provider decide.
	MaxTokens int

	// StrictFormat asks for a machine-parseable TSV-only reply. Used on
	// the single manual retry after a reply that yielded no cards.
	StrictFormat bool
}
