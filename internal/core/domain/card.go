package domain

import (
	"fmt"
	"strings"
	"time"
)

// Validation limits for card sides. Longer sides make poor flashcards and
// break most spaced-repetition clients.
const (
	// MaxFrontLen is the maximum length of a card front in characters.
	MaxFrontLen = 600

	// MaxBackLen is the maximum length of a card back in characters.
	MaxBackLen = 1500
)

// Card is a front/back question-answer pair generated from one chunk.
// Cards are mutable after generation: the user edits them in the review
// view before export.
type Card struct {
	// ID is the unique identifier for the card.
	ID string

	// DeckID links to the owning Deck.
	DeckID string

	// Front is the question side.
	Front string

	// Back is the answer side.
	Back string

	// ChunkPosition is the position of the source chunk. Cards keep
	// chunk order in the deck regardless of generation completion order.
	ChunkPosition int

	// Position is the ordinal position within the deck.
	Position int

	// CreatedAt is when the card was generated.
	CreatedAt time.Time

	// UpdatedAt is when the card was last edited.
	UpdatedAt time.Time
}

// Validate checks the card against the export rules.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Front) == "" {
		return fmt.Errorf("%w: empty front", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Back) == "" {
		return fmt.Errorf("%w: empty back", ErrInvalidInput)
	}
	if len([]rune(c.Front)) > MaxFrontLen {
		return fmt.Errorf("%w: front exceeds %d characters", ErrInvalidInput, MaxFrontLen)
	}
	if len([]rune(c.Back)) > MaxBackLen {
		return fmt.Errorf("%w: back exceeds %d characters", ErrInvalidInput, MaxBackLen)
	}
	return nil
}

// Deck is a named, ordered collection of cards from one generation run.
type Deck struct {
	// ID is the unique identifier for the deck.
	ID string

	// Name is the user-facing deck name.
	Name string

	// SourceURI records where the source document came from.
	SourceURI string

	// Model records which LLM model generated the deck.
	Model string

	// Cards are ordered by (ChunkPosition, Position).
	Cards []Card

	// CreatedAt is when the deck was created.
	CreatedAt time.Time

	// UpdatedAt is when the deck was last modified.
	UpdatedAt time.Time
}

// Validate checks every card in the deck. It reports the first offending
// card so the user can fix it in the review view.
func (d Deck) Validate() error {
	if len(d.Cards) == 0 {
		return ErrEmptyDeck
	}
	for i, c := range d.Cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i+1, err)
		}
	}
	return nil
}

// GenerationReport summarises a generation run: which chunks produced
// cards and which failed. Failed chunks do not abort the run.
type GenerationReport struct {
	// DeckID is the deck the run produced.
	DeckID string

	// Chunks is the total number of chunks processed.
	Chunks int

	// Cards is the total number of cards generated.
	Cards int

	// Failures records per-chunk errors, keyed by chunk position.
	Failures map[int]string
}

// Failed returns the number of chunks that produced an error.
func (r GenerationReport) Failed() int {
	return len(r.Failures)
}
