package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API (or a compatible server).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local models)"
	case AIProviderOpenAI:
		return "OpenAI (cloud API)"
	case AIProviderAnthropic:
		return "Anthropic (cloud API)"
	default:
		return unknownDescription
	}
}

// LLMSettings configures the generation provider.
type LLMSettings struct {
	// Provider selects the LLM backend.
	Provider AIProvider

	// Model is the model identifier passed to the provider.
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint (Azure, LM Studio, etc).
	BaseURL string
}

// IsConfigured returns true if enough is set to create a service.
func (s LLMSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// GenerationSettings configures the per-run generation behaviour.
type GenerationSettings struct {
	// Cards is the target number of cards for the whole document.
	Cards int

	// Concurrency bounds the number of in-flight chunk requests.
	Concurrency int

	// RequestsPerSecond is the client-side rate limit. Zero disables it.
	RequestsPerSecond float64

	// Temperature controls sampling randomness.
	Temperature float64
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	LLM      LLMSettings
	Chunking ChunkingConfig
	Generate GenerationSettings
}

// DefaultAppSettings returns the default configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    "llama3.1",
		},
		Chunking: DefaultChunkingConfig(),
		Generate: GenerationSettings{
			Cards:       30,
			Concurrency: 2,
			Temperature: 0.2,
		},
	}
}
