// Package ai provides factory functions for creating the card generator.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/llm/anthropic"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/llm/ollama"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/llm/openai"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateGenerator creates a card generator and validates
// connectivity. Returns the generator if successful, or an error with guidance.
func CreateAndValidateGenerator(settings *domain.LLMSettings, prompts driven.PromptStore) (driven.CardGenerator, error) {
	gen, err := CreateGenerator(settings, prompts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'cardforge settings wizard' to fix",
			domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := gen.Ping(ctx); err != nil {
		gen.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'cardforge settings wizard' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return gen, nil
}

// ValidateConfig validates an LLM configuration by creating a generator and
// pinging it. This is intended for use in the settings wizard to validate
// credentials on configuration.
func ValidateConfig(settings *domain.LLMSettings) error {
	gen, err := CreateGenerator(settings, nil)
	if err != nil {
		return err
	}
	defer gen.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return gen.Ping(ctx)
}

// UnavailableGenerator defers a configuration error until generation is
// attempted, so commands that never call the LLM keep working without a
// configured provider.
type UnavailableGenerator struct {
	Err error
}

var _ driven.CardGenerator = (*UnavailableGenerator)(nil)

func (g *UnavailableGenerator) GenerateCards(_ context.Context, _ driven.CardRequest) (string, error) {
	return "", g.Err
}

func (g *UnavailableGenerator) ModelName() string { return "unconfigured" }

func (g *UnavailableGenerator) Ping(_ context.Context) error { return g.Err }

func (g *UnavailableGenerator) Close() error { return nil }

// GeneratorOrUnavailable creates a generator, falling back to an
// UnavailableGenerator carrying the configuration error.
func GeneratorOrUnavailable(settings *domain.LLMSettings, prompts driven.PromptStore) driven.CardGenerator {
	gen, err := CreateGenerator(settings, prompts)
	if err != nil {
		return &UnavailableGenerator{
			Err: fmt.Errorf("%w: %w. Run 'cardforge settings wizard' to fix",
				domain.ErrLLMUnavailable, err),
		}
	}
	return gen
}

// promptAware is implemented by generators that accept a PromptStore.
type promptAware interface {
	SetPromptStore(driven.PromptStore)
}

// CreateGenerator creates the appropriate card generator based on settings.
func CreateGenerator(settings *domain.LLMSettings, prompts driven.PromptStore) (driven.CardGenerator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	var (
		gen driven.CardGenerator
		err error
	)

	switch settings.Provider {
	case domain.AIProviderOllama:
		gen = ollama.NewCardService(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		gen, err = openai.NewCardService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		gen, err = anthropic.NewCardService(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}

	if err != nil {
		return nil, err
	}

	if prompts != nil {
		if pa, ok := gen.(promptAware); ok {
			pa.SetPromptStore(prompts)
		}
	}

	return gen, nil
}
