package services

import (
	"context"
	"fmt"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
)

// Ensure DeckService implements the interface.
var _ driving.DeckService = (*DeckService)(nil)

// DeckService manages generated decks and their cards.
type DeckService struct {
	decks driven.DeckStore
}

// NewDeckService creates a new deck service.
func NewDeckService(decks driven.DeckStore) *DeckService {
	return &DeckService{decks: decks}
}

// List returns all decks without cards, newest first.
func (s *DeckService) List(ctx context.Context) ([]domain.Deck, error) {
	return s.decks.ListDecks(ctx)
}

// Get retrieves a deck with its cards.
func (s *DeckService) Get(ctx context.Context, deckID string) (*domain.Deck, error) {
	if deckID == "" {
		return nil, fmt.Errorf("%w: empty deck id", domain.ErrInvalidInput)
	}
	return s.decks.GetDeck(ctx, deckID)
}

// Delete removes a deck and its cards.
func (s *DeckService) Delete(ctx context.Context, deckID string) error {
	if deckID == "" {
		return fmt.Errorf("%w: empty deck id", domain.ErrInvalidInput)
	}
	return s.decks.DeleteDeck(ctx, deckID)
}

// UpdateCard applies a user edit to one card. The edit is validated
// against the export rules before it is persisted.
func (s *DeckService) UpdateCard(ctx context.Context, card *domain.Card) error {
	if card == nil {
		return fmt.Errorf("%w: nil card", domain.ErrInvalidInput)
	}
	if err := card.Validate(); err != nil {
		return err
	}
	return s.decks.UpdateCard(ctx, card)
}

// DeleteCard removes one card from its deck.
func (s *DeckService) DeleteCard(ctx context.Context, cardID string) error {
	if cardID == "" {
		return fmt.Errorf("%w: empty card id", domain.ErrInvalidInput)
	}
	return s.decks.DeleteCard(ctx, cardID)
}
