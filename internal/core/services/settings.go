package services

import (
	"fmt"
	"strconv"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
	"github.com/cardforge-labs/cardforge-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyChunkTarget       = "chunking.target_tokens"
	keyChunkOverlap      = "chunking.overlap_tokens"
	keyChunkRatio        = "chunking.chars_per_token"
	keyChunkCounter      = "chunking.counter"
	keyGenerateCards     = "generate.cards"
	keyGenConcurrency    = "generate.concurrency"
	keyGenRequestsPerSec = "generate.requests_per_second"
	keyGenTemperature    = "generate.temperature"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid stored
// values fall back to the defaults so a hand-edited config file cannot
// brick the tool.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Chunking: domain.ChunkingConfig{
			TargetTokens:  s.getInt(keyChunkTarget, defaults.Chunking.TargetTokens),
			OverlapTokens: s.getInt(keyChunkOverlap, defaults.Chunking.OverlapTokens),
			CharsPerToken: s.getInt(keyChunkRatio, defaults.Chunking.CharsPerToken),
			Counter:       s.getCounter(defaults.Chunking.Counter),
		},
		Generate: domain.GenerationSettings{
			Cards:             s.getInt(keyGenerateCards, defaults.Generate.Cards),
			Concurrency:       s.getInt(keyGenConcurrency, defaults.Generate.Concurrency),
			RequestsPerSecond: s.getFloat(keyGenRequestsPerSec, defaults.Generate.RequestsPerSecond),
			Temperature:       s.getFloat(keyGenTemperature, defaults.Generate.Temperature),
		},
	}

	if err := settings.Chunking.Validate(); err != nil {
		logger.Warn("Stored chunking settings invalid, using defaults: %v", err)
		settings.Chunking = defaults.Chunking
	}

	return settings, nil
}

// Set stores a single setting by its dotted key, parsing the value to
// the key's type.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyLLMProvider:
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown provider %q (ollama, openai, anthropic)", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)

	case keyChunkCounter:
		if !domain.TokenCounterKind(value).IsValid() {
			return fmt.Errorf("%w: unknown token counter %q (heuristic, tiktoken)", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)

	case keyChunkTarget, keyChunkOverlap, keyChunkRatio, keyGenerateCards, keyGenConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, n)

	case keyGenRequestsPerSec, keyGenTemperature:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, f)

	case keyLLMModel, keyLLMBaseURL, keyLLMAPIKey:
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Save persists a complete settings struct.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keyChunkTarget, settings.Chunking.TargetTokens); err != nil {
		return fmt.Errorf("save chunking target_tokens: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunking.OverlapTokens); err != nil {
		return fmt.Errorf("save chunking overlap_tokens: %w", err)
	}
	if err := s.configStore.Set(keyChunkRatio, settings.Chunking.CharsPerToken); err != nil {
		return fmt.Errorf("save chunking chars_per_token: %w", err)
	}
	if err := s.configStore.Set(keyChunkCounter, string(settings.Chunking.Counter)); err != nil {
		return fmt.Errorf("save chunking counter: %w", err)
	}

	if err := s.configStore.Set(keyGenerateCards, settings.Generate.Cards); err != nil {
		return fmt.Errorf("save generate cards: %w", err)
	}
	if err := s.configStore.Set(keyGenConcurrency, settings.Generate.Concurrency); err != nil {
		return fmt.Errorf("save generate concurrency: %w", err)
	}
	if err := s.configStore.Set(keyGenRequestsPerSec, settings.Generate.RequestsPerSecond); err != nil {
		return fmt.Errorf("save generate requests_per_second: %w", err)
	}
	if err := s.configStore.Set(keyGenTemperature, settings.Generate.Temperature); err != nil {
		return fmt.Errorf("save generate temperature: %w", err)
	}

	return nil
}

// getString returns the stored value or the default when absent.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getInt returns the stored value or the default when absent or zero.
func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

// getFloat returns the stored value or the default when absent.
func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetFloat(key)
}

// getProvider returns the stored provider, or the default when the
// stored value is absent or not recognised.
func (s *SettingsService) getProvider(fallback domain.AIProvider) domain.AIProvider {
	v := s.configStore.GetString(keyLLMProvider)
	if v == "" {
		return fallback
	}
	provider := domain.AIProvider(v)
	if !provider.IsValid() {
		logger.Warn("Unknown provider %q in config, using %q", v, fallback)
		return fallback
	}
	return provider
}

// getCounter returns the stored token counter kind, or the default when
// the stored value is absent or not recognised.
func (s *SettingsService) getCounter(fallback domain.TokenCounterKind) domain.TokenCounterKind {
	v := s.configStore.GetString(keyChunkCounter)
	if v == "" {
		return fallback
	}
	kind := domain.TokenCounterKind(v)
	if !kind.IsValid() {
		logger.Warn("Unknown token counter %q in config, using %q", v, fallback)
		return fallback
	}
	return kind
}
