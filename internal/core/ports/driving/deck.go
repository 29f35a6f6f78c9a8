package driving

import (
	"context"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// DeckService manages generated decks and their cards.
type DeckService interface {
	// List returns all decks without cards, newest first.
	List(ctx context.Context) ([]domain.Deck, error)

	// Get retrieves a deck with its cards.
	Get(ctx context.Context, deckID string) (*domain.Deck, error)

	// Delete removes a deck and its cards.
	Delete(ctx context.Context, deckID string) error

	// UpdateCard applies a user edit to one card.
	UpdateCard(ctx context.Context, card *domain.Card) error

	// DeleteCard removes one card from its deck.
	DeleteCard(ctx context.Context, cardID string) error
}
