package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

type mockDeckService struct {
	decks      []domain.Deck
	deletedIDs []string
}

func (m *mockDeckService) List(_ context.Context) ([]domain.Deck, error) {
	return m.decks, nil
}

func (m *mockDeckService) Get(_ context.Context, deckID string) (*domain.Deck, error) {
	for i := range m.decks {
		if m.decks[i].ID == deckID {
			return &m.decks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDeckService) Delete(_ context.Context, deckID string) error {
	m.deletedIDs = append(m.deletedIDs, deckID)
	return nil
}

func (m *mockDeckService) UpdateCard(_ context.Context, _ *domain.Card) error { return nil }

func (m *mockDeckService) DeleteCard(_ context.Context, _ string) error { return nil }

func testDecks() []domain.Deck {
	return []domain.Deck{
		{
			ID:        "deck-1",
			Name:      "biology notes",
			Model:     "llama3.1",
			SourceURI: "notes.pdf",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Cards: []domain.Card{
				{ID: "card-0", DeckID: "deck-1", Front: "What is a cell?", Back: "The basic unit of life"},
				{ID: "card-1", DeckID: "deck-1", Front: "What is DNA?", Back: "Genetic material"},
			},
		},
	}
}

func TestDeckListCmd_Empty(t *testing.T) {
	SetDeckService(&mockDeckService{})
	defer SetDeckService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"deck", "list"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No decks yet")
}

func TestDeckListCmd_ShowsDecks(t *testing.T) {
	SetDeckService(&mockDeckService{decks: testDecks()})
	defer SetDeckService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"deck", "list"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "deck-1")
	assert.Contains(t, out, "biology notes")
	assert.Contains(t, out, "llama3.1")
}

func TestDeckShowCmd_PrintsCards(t *testing.T) {
	SetDeckService(&mockDeckService{decks: testDecks()})
	defer SetDeckService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"deck", "show", "deck-1"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "biology notes (2 cards)")
	assert.Contains(t, out, "What is a cell?")
	assert.Contains(t, out, "The basic unit of life")
}

func TestDeckShowCmd_MissingDeck(t *testing.T) {
	SetDeckService(&mockDeckService{})
	defer SetDeckService(nil)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"deck", "show", "nope"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestDeckDeleteCmd_Executes(t *testing.T) {
	mock := &mockDeckService{decks: testDecks()}
	SetDeckService(mock)
	defer SetDeckService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"deck", "delete", "deck-1"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"deck-1"}, mock.deletedIDs)
	assert.Contains(t, buf.String(), "Deleted deck deck-1")
}
