package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/storage/memory"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers"
	"github.com/cardforge-labs/cardforge-cli/internal/postprocessors"
)

// mockGenerator scripts the model replies per call.
type mockGenerator struct {
	mu       sync.Mutex
	requests []driven.CardRequest
	reply    func(call int, req driven.CardRequest) (string, error)
}

func (m *mockGenerator) GenerateCards(_ context.Context, req driven.CardRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	call := len(m.requests)
	m.mu.Unlock()
	return m.reply(call, req)
}

func (m *mockGenerator) ModelName() string            { return "mock-model" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error                 { return nil }

func (m *mockGenerator) calls() []driven.CardRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]driven.CardRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func testSettings() domain.AppSettings {
	return domain.AppSettings{
		LLM: domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "mock-model"},
		Chunking: domain.ChunkingConfig{
			// 25 tokens at 4 chars/token = 100-rune windows.
			TargetTokens:  25,
			OverlapTokens: 0,
			CharsPerToken: 4,
			Counter:       domain.TokenCounterHeuristic,
		},
		Generate: domain.GenerationSettings{
			Cards:       6,
			Concurrency: 1,
			Temperature: 0.1,
		},
	}
}

func newTestService(gen driven.CardGenerator, decks driven.DeckStore, settings domain.AppSettings) *GenerateService {
	return NewGenerateService(
		gen,
		decks,
		normalisers.NewDefaultRegistry(),
		func(cfg domain.ChunkingConfig) (driven.PostProcessorPipeline, error) {
			return postprocessors.DefaultPipeline(cfg)
		},
		settings,
	)
}

// threeChunkText yields three 100-rune windows under testSettings.
func threeChunkText() string {
	return strings.TrimSpace(strings.Repeat("go is fun ", 30))
}

func TestGenerateFromText_HappyPath(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return fmt.Sprintf("Q%da\tA%da\nQ%db\tA%db", call, call, call, call), nil
	}}
	decks := memory.NewDeckStore()
	svc := newTestService(gen, decks, testSettings())

	report, err := svc.GenerateFromText(context.Background(), "test notes", threeChunkText(), driving.GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 6, report.Cards)
	assert.Zero(t, report.Failed())
	require.NotEmpty(t, report.DeckID)

	deck, err := decks.GetDeck(context.Background(), report.DeckID)
	require.NoError(t, err)
	assert.Equal(t, "test notes", deck.Name)
	assert.Equal(t, "mock-model", deck.Model)
	require.Len(t, deck.Cards, 6)

	// Cards keep chunk order and get sequential positions.
	for i, card := range deck.Cards {
		assert.Equal(t, i, card.Position)
		assert.Equal(t, deck.ID, card.DeckID)
		assert.NotEmpty(t, card.ID)
	}
	assert.Equal(t, 0, deck.Cards[0].ChunkPosition)
	assert.Equal(t, 2, deck.Cards[5].ChunkPosition)

	// The quota is split evenly: 6 cards over 3 chunks.
	calls := gen.calls()
	require.Len(t, calls, 3)
	for _, req := range calls {
		assert.Equal(t, 2, req.CardCount)
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)
		assert.False(t, req.StrictFormat)
	}
}

func TestGenerate_ChunkFailureDoesNotAbortRun(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		if call == 2 {
			return "", errors.New("model overloaded")
		}
		return "Q\tA", nil
	}}
	decks := memory.NewDeckStore()
	svc := newTestService(gen, decks, testSettings())

	var progressMu sync.Mutex
	var reported []int
	svc.SetProgress(func(position, total, cards int, err error) {
		progressMu.Lock()
		reported = append(reported, position)
		progressMu.Unlock()
	})

	report, err := svc.GenerateFromText(context.Background(), "notes", threeChunkText(), driving.GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 2, report.Cards)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, report.Failures[1], "model overloaded")

	deck, err := decks.GetDeck(context.Background(), report.DeckID)
	require.NoError(t, err)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, 0, deck.Cards[0].ChunkPosition)
	assert.Equal(t, 2, deck.Cards[1].ChunkPosition)

	assert.ElementsMatch(t, []int{0, 1, 2}, reported)
}

func TestGenerate_StrictRetryAfterUnparseableReply(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		if call == 1 {
			return "I'm sorry, here are some thoughts about your notes.", nil
		}
		return "Q\tA", nil
	}}
	decks := memory.NewDeckStore()

	settings := testSettings()
	settings.Generate.Cards = 2
	settings.Chunking = domain.DefaultChunkingConfig() // single chunk
	svc := newTestService(gen, decks, settings)

	report, err := svc.GenerateFromText(context.Background(), "notes", "short note text", driving.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Cards)

	calls := gen.calls()
	require.Len(t, calls, 2)
	assert.False(t, calls[0].StrictFormat)
	assert.True(t, calls[1].StrictFormat)
}

func TestGenerate_AllChunksFail(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return "", errors.New("connection refused")
	}}
	decks := memory.NewDeckStore()
	svc := newTestService(gen, decks, testSettings())

	report, err := svc.GenerateFromText(context.Background(), "notes", threeChunkText(), driving.GenerateOptions{})
	require.ErrorIs(t, err, domain.ErrNoCards)
	require.NotNil(t, report)
	assert.Equal(t, 3, report.Failed())
	assert.Empty(t, report.DeckID)

	// Nothing was saved.
	all, err := decks.ListDecks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGenerate_InvalidChunkingOverride(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return "Q\tA", nil
	}}
	svc := newTestService(gen, memory.NewDeckStore(), testSettings())

	_, err := svc.GenerateFromText(context.Background(), "notes", "some text", driving.GenerateOptions{
		Chunking: &domain.ChunkingConfig{TargetTokens: 10, OverlapTokens: 20, CharsPerToken: 4},
	})
	require.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
	assert.Empty(t, gen.calls())
}

func TestGenerate_EmptyDocument(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return "Q\tA", nil
	}}
	svc := newTestService(gen, memory.NewDeckStore(), testSettings())

	_, err := svc.GenerateFromText(context.Background(), "notes", "   \n\n  ", driving.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestGenerateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics_notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("newton's laws of motion"), 0600))

	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return "What is the first law?\tInertia.", nil
	}}
	decks := memory.NewDeckStore()

	settings := testSettings()
	settings.Chunking = domain.DefaultChunkingConfig()
	svc := newTestService(gen, decks, settings)

	report, err := svc.GenerateFromFile(context.Background(), path, driving.GenerateOptions{})
	require.NoError(t, err)

	deck, err := decks.GetDeck(context.Background(), report.DeckID)
	require.NoError(t, err)
	assert.Equal(t, "physics notes", deck.Name)
	assert.Equal(t, path, deck.SourceURI)
}

func TestGenerateFromFile_Stdin(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return "Q\tA", nil
	}}
	decks := memory.NewDeckStore()

	settings := testSettings()
	settings.Chunking = domain.DefaultChunkingConfig()
	svc := newTestService(gen, decks, settings)
	svc.stdin = strings.NewReader("pasted note content")

	report, err := svc.GenerateFromFile(context.Background(), "-", driving.GenerateOptions{DeckName: "pasted"})
	require.NoError(t, err)

	deck, err := decks.GetDeck(context.Background(), report.DeckID)
	require.NoError(t, err)
	assert.Equal(t, "pasted", deck.Name)
	assert.Equal(t, "-", deck.SourceURI)
}

func TestGenerateFromFile_MissingFile(t *testing.T) {
	gen := &mockGenerator{reply: func(call int, req driven.CardRequest) (string, error) {
		return "Q\tA", nil
	}}
	svc := newTestService(gen, memory.NewDeckStore(), testSettings())

	_, err := svc.GenerateFromFile(context.Background(), "/does/not/exist.txt", driving.GenerateOptions{})
	assert.Error(t, err)
}

func TestSplitQuota(t *testing.T) {
	tests := []struct {
		total, chunks int
		want          []int
	}{
		{6, 3, []int{2, 2, 2}},
		{7, 3, []int{3, 2, 2}},
		{2, 3, []int{1, 1, 0}},
		{30, 1, []int{30}},
		{0, 2, []int{0, 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitQuota(tt.total, tt.chunks), "splitQuota(%d, %d)", tt.total, tt.chunks)
	}
}
