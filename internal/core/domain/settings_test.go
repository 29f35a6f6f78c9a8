package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.True(t, AIProviderAnthropic.IsValid())
	assert.False(t, AIProvider("mistral").IsValid())
	assert.False(t, AIProvider("").IsValid())
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
}

func TestAIProvider_IsLocal(t *testing.T) {
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderOpenAI.IsLocal())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Contains(t, AIProviderOllama.Description(), "Ollama")
	assert.Equal(t, unknownDescription, AIProvider("bogus").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		want     bool
	}{
		{"ollama without key", LLMSettings{Provider: AIProviderOllama, Model: "llama3.1"}, true},
		{"openai with key", LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"anthropic without key", LLMSettings{Provider: AIProviderAnthropic}, false},
		{"invalid provider", LLMSettings{Provider: "bogus", APIKey: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	require.True(t, s.LLM.IsConfigured())
	assert.Equal(t, AIProviderOllama, s.LLM.Provider)
	assert.NoError(t, s.Chunking.Validate())
	assert.Positive(t, s.Generate.Cards)
	assert.Positive(t, s.Generate.Concurrency)
}
