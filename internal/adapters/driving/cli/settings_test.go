package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty uses default", input: "", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Valid choice", input: "2", maxVal: 3, defaultVal: 1, expected: 2},
		{name: "Too large uses default", input: "9", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Zero uses default", input: "0", maxVal: 3, defaultVal: 2, expected: 2},
		{name: "Garbage uses default", input: "abc", maxVal: 3, defaultVal: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultModelFor(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", defaultModelFor(domain.AIProviderOpenAI))
	assert.Equal(t, "claude-3-5-sonnet-latest", defaultModelFor(domain.AIProviderAnthropic))
	assert.Equal(t, "llama3.1", defaultModelFor(domain.AIProviderOllama))
}

type mockSettingsService struct {
	settings *domain.AppSettings
	setKeys  map[string]string
	saved    *domain.AppSettings
	setErr   error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.setKeys == nil {
		m.setKeys = make(map[string]string)
	}
	m.setKeys[key] = value
	return nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return nil
}

func TestSettingsSetCmd_Executes(t *testing.T) {
	mock := &mockSettingsService{}
	SetSettingsService(mock)
	defer SetSettingsService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "llm.model", "llama3.1"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "llama3.1", mock.setKeys["llm.model"])
	assert.Contains(t, buf.String(), "Set llm.model = llama3.1")
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	mock := &mockSettingsService{}
	SetSettingsService(mock)
	defer SetSettingsService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "[Chunking]")
	assert.Contains(t, out, "[Generation]")
}

func TestSettingsCmd_NoService(t *testing.T) {
	SetSettingsService(nil)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
