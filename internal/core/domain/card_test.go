package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{
			name: "valid card",
			card: Card{Front: "What is a goroutine?", Back: "A lightweight thread managed by the Go runtime."},
		},
		{
			name:    "empty front",
			card:    Card{Front: "  ", Back: "answer"},
			wantErr: true,
		},
		{
			name:    "empty back",
			card:    Card{Front: "question", Back: ""},
			wantErr: true,
		},
		{
			name:    "front too long",
			card:    Card{Front: strings.Repeat("q", MaxFrontLen+1), Back: "answer"},
			wantErr: true,
		},
		{
			name: "front at limit",
			card: Card{Front: strings.Repeat("q", MaxFrontLen), Back: "answer"},
		},
		{
			name:    "back too long",
			card:    Card{Front: "question", Back: strings.Repeat("a", MaxBackLen+1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeck_Validate(t *testing.T) {
	t.Run("empty deck", func(t *testing.T) {
		err := Deck{}.Validate()
		assert.ErrorIs(t, err, ErrEmptyDeck)
	})

	t.Run("valid cards", func(t *testing.T) {
		d := Deck{Cards: []Card{
			{Front: "q1", Back: "a1"},
			{Front: "q2", Back: "a2"},
		}}
		assert.NoError(t, d.Validate())
	})

	t.Run("reports offending card position", func(t *testing.T) {
		d := Deck{Cards: []Card{
			{Front: "q1", Back: "a1"},
			{Front: "", Back: "a2"},
		}}
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "card 2")
	})
}

func TestGenerationReport_Failed(t *testing.T) {
	r := GenerationReport{Failures: map[int]string{2: "timeout", 5: "rate limited"}}
	assert.Equal(t, 2, r.Failed())

	assert.Zero(t, GenerationReport{}.Failed())
}
