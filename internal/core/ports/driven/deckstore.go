package driven

import (
	"context"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// DeckStore persists decks and their cards.
type DeckStore interface {
	// SaveDeck inserts or replaces a deck and all its cards.
	SaveDeck(ctx context.Context, deck *domain.Deck) error

	// GetDeck retrieves a deck with its cards, ordered by position.
	// Returns domain.ErrNotFound when the deck does not exist.
	GetDeck(ctx context.Context, deckID string) (*domain.Deck, error)

	// ListDecks returns all decks without their cards, newest first.
	ListDecks(ctx context.Context) ([]domain.Deck, error)

	// DeleteDeck removes a deck and its cards.
	// Returns domain.ErrNotFound when the deck does not exist.
	DeleteDeck(ctx context.Context, deckID string) error

	// UpdateCard replaces a single card's front/back.
	// Returns domain.ErrNotFound when the card does not exist.
	UpdateCard(ctx context.Context, card *domain.Card) error

	// DeleteCard removes a single card from its deck.
	DeleteCard(ctx context.Context, cardID string) error

	// Close releases resources.
	Close() error
}
