// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and as a fallback when no database is wanted.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

// Ensure DeckStore implements the interface.
var _ driven.DeckStore = (*DeckStore)(nil)

// DeckStore is an in-memory implementation of driven.DeckStore.
type DeckStore struct {
	mu    sync.RWMutex
	decks map[string]domain.Deck
}

// NewDeckStore creates a new in-memory deck store.
func NewDeckStore() *DeckStore {
	return &DeckStore{
		decks: make(map[string]domain.Deck),
	}
}

// SaveDeck stores or replaces a deck and all its cards.
func (s *DeckStore) SaveDeck(_ context.Context, deck *domain.Deck) error {
	if deck == nil || deck.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if deck.CreatedAt.IsZero() {
		deck.CreatedAt = now
	}
	deck.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = copyDeck(*deck)
	return nil
}

// GetDeck retrieves a deck with its cards, ordered by position.
func (s *DeckStore) GetDeck(_ context.Context, deckID string) (*domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deck, ok := s.decks[deckID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := copyDeck(deck)
	sort.SliceStable(out.Cards, func(i, j int) bool {
		if out.Cards[i].ChunkPosition != out.Cards[j].ChunkPosition {
			return out.Cards[i].ChunkPosition < out.Cards[j].ChunkPosition
		}
		return out.Cards[i].Position < out.Cards[j].Position
	})
	return &out, nil
}

// ListDecks returns all decks without their cards, newest first.
func (s *DeckStore) ListDecks(_ context.Context) ([]domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Deck, 0, len(s.decks))
	for _, deck := range s.decks {
		deck.Cards = nil
		result = append(result, deck)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteDeck removes a deck and its cards.
func (s *DeckStore) DeleteDeck(_ context.Context, deckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.decks[deckID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.decks, deckID)
	return nil
}

// UpdateCard replaces a single card's front/back.
func (s *DeckStore) UpdateCard(_ context.Context, card *domain.Card) error {
	if card == nil || card.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for deckID, deck := range s.decks {
		for i := range deck.Cards {
			if deck.Cards[i].ID != card.ID {
				continue
			}
			deck.Cards[i].Front = card.Front
			deck.Cards[i].Back = card.Back
			deck.Cards[i].UpdatedAt = time.Now().UTC()
			card.UpdatedAt = deck.Cards[i].UpdatedAt
			s.decks[deckID] = deck
			return nil
		}
	}
	return domain.ErrNotFound
}

// DeleteCard removes a single card from its deck.
func (s *DeckStore) DeleteCard(_ context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for deckID, deck := range s.decks {
		for i := range deck.Cards {
			if deck.Cards[i].ID != cardID {
				continue
			}
			deck.Cards = append(deck.Cards[:i], deck.Cards[i+1:]...)
			s.decks[deckID] = deck
			return nil
		}
	}
	return domain.ErrNotFound
}

// Close releases resources.
func (s *DeckStore) Close() error {
	return nil
}

// copyDeck returns a deck with its own card slice, so callers cannot
// mutate stored state through the returned value.
func copyDeck(deck domain.Deck) domain.Deck {
	cards := make([]domain.Card, len(deck.Cards))
	copy(cards, deck.Cards)
	deck.Cards = cards
	return deck
}
