package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// MockDeckService is a configurable deck service for app tests.
type MockDeckService struct {
	deck       *domain.Deck
	getErr     error
	deletedIDs []string
}

func (m *MockDeckService) List(_ context.Context) ([]domain.Deck, error) {
	if m.deck == nil {
		return nil, nil
	}
	return []domain.Deck{*m.deck}, nil
}

func (m *MockDeckService) Get(_ context.Context, deckID string) (*domain.Deck, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.deck == nil || m.deck.ID != deckID {
		return nil, domain.ErrNotFound
	}
	deck := *m.deck
	return &deck, nil
}

func (m *MockDeckService) Delete(_ context.Context, deckID string) error {
	m.deletedIDs = append(m.deletedIDs, deckID)
	return nil
}

func (m *MockDeckService) UpdateCard(_ context.Context, _ *domain.Card) error { return nil }

func (m *MockDeckService) DeleteCard(_ context.Context, _ string) error { return nil }

func TestNewPorts(t *testing.T) {
	deck := &MockDeckService{}

	ports := NewPorts(deck, nil)

	require.NotNil(t, ports)
	assert.Equal(t, deck, ports.Deck)
	assert.Nil(t, ports.Export)
}

func TestPorts_Validate(t *testing.T) {
	ports := &Ports{Deck: &MockDeckService{}}

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingDeck(t *testing.T) {
	ports := &Ports{}

	assert.ErrorIs(t, ports.Validate(), ErrMissingDeckService)
}
