package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/storage/memory"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
)

func TestExportService(t *testing.T) {
	store := memory.NewDeckStore()
	require.NoError(t, store.SaveDeck(context.Background(), &domain.Deck{
		ID:   "deck-1",
		Name: "sample",
		Cards: []domain.Card{
			{ID: "card-1", Front: "Q1", Back: "A1"},
		},
	}))
	require.NoError(t, store.SaveDeck(context.Background(), &domain.Deck{
		ID:   "deck-empty",
		Name: "empty",
	}))

	svc := NewExportService(store)
	ctx := context.Background()

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, "deck-1", driving.FormatCSV, &buf))
		assert.Equal(t, "front,back\nQ1,A1\n", buf.String())
	})

	t.Run("anki", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, "deck-1", driving.FormatAnki, &buf))
		assert.Equal(t, "Q1\tA1\n", buf.String())
		assert.False(t, strings.Contains(buf.String(), "front"))
	})

	t.Run("empty deck", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.Export(ctx, "deck-empty", driving.FormatCSV, &buf)
		assert.ErrorIs(t, err, domain.ErrEmptyDeck)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.Export(ctx, "deck-1", driving.ExportFormat("yaml"), &buf)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing deck", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.Export(ctx, "nope", driving.FormatCSV, &buf)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
