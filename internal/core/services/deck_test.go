package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/storage/memory"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

func seededDeckService(t *testing.T) (*DeckService, *memory.DeckStore) {
	t.Helper()

	store := memory.NewDeckStore()
	deck := &domain.Deck{
		ID:   "deck-1",
		Name: "sample",
		Cards: []domain.Card{
			{ID: "card-1", Front: "Q1", Back: "A1"},
			{ID: "card-2", Front: "Q2", Back: "A2"},
		},
	}
	require.NoError(t, store.SaveDeck(context.Background(), deck))

	return NewDeckService(store), store
}

func TestDeckService_GetAndList(t *testing.T) {
	svc, _ := seededDeckService(t)
	ctx := context.Background()

	deck, err := svc.Get(ctx, "deck-1")
	require.NoError(t, err)
	assert.Len(t, deck.Cards, 2)

	decks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, decks, 1)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeckService_UpdateCardValidates(t *testing.T) {
	svc, store := seededDeckService(t)
	ctx := context.Background()

	// Valid edit goes through.
	require.NoError(t, svc.UpdateCard(ctx, &domain.Card{ID: "card-1", Front: "edited", Back: "fine"}))
	deck, err := store.GetDeck(ctx, "deck-1")
	require.NoError(t, err)
	assert.Equal(t, "edited", deck.Cards[0].Front)

	// Invalid edits are rejected before hitting the store.
	err = svc.UpdateCard(ctx, &domain.Card{ID: "card-1", Front: "", Back: "fine"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.UpdateCard(ctx, &domain.Card{
		ID:    "card-1",
		Front: strings.Repeat("x", domain.MaxFrontLen+1),
		Back:  "fine",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, svc.UpdateCard(ctx, nil), domain.ErrInvalidInput)
}

func TestDeckService_DeleteDeckAndCard(t *testing.T) {
	svc, _ := seededDeckService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteCard(ctx, "card-2"))
	deck, err := svc.Get(ctx, "deck-1")
	require.NoError(t, err)
	assert.Len(t, deck.Cards, 1)

	require.NoError(t, svc.Delete(ctx, "deck-1"))
	_, err = svc.Get(ctx, "deck-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
