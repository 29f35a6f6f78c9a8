package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

// deckStore implements driven.DeckStore.
type deckStore struct {
	store *Store
}

var _ driven.DeckStore = (*deckStore)(nil)

// SaveDeck inserts or replaces a deck and all its cards in one transaction.
func (s *deckStore) SaveDeck(ctx context.Context, deck *domain.Deck) error {
	if deck == nil || deck.ID == "" {
		return fmt.Errorf("%w: deck without id", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	if deck.CreatedAt.IsZero() {
		deck.CreatedAt = now
	}
	deck.UpdatedAt = now

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, name, source_uri, model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source_uri = excluded.source_uri,
			model = excluded.model,
			updated_at = excluded.updated_at
	`, deck.ID, deck.Name, deck.SourceURI, deck.Model, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving deck: %w", err)
	}

	// Replace the card set wholesale. Decks are small enough that a
	// delete-and-reinsert is simpler than diffing.
	if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE deck_id = ?", deck.ID); err != nil {
		return fmt.Errorf("clearing cards: %w", err)
	}

	for i := range deck.Cards {
		card := &deck.Cards[i]
		card.DeckID = deck.ID
		if card.CreatedAt.IsZero() {
			card.CreatedAt = now
		}
		if card.UpdatedAt.IsZero() {
			card.UpdatedAt = now
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO cards (id, deck_id, front, back, chunk_position, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, card.ID, card.DeckID, card.Front, card.Back,
			card.ChunkPosition, card.Position, card.CreatedAt, card.UpdatedAt)
		if err != nil {
			return fmt.Errorf("saving card %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// GetDeck retrieves a deck with its cards, ordered by position.
func (s *deckStore) GetDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, source_uri, model, created_at, updated_at
		FROM decks WHERE id = ?
	`, deckID)

	deck, err := scanDeck(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, deck_id, front, back, chunk_position, position, created_at, updated_at
		FROM cards WHERE deck_id = ?
		ORDER BY chunk_position, position
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var card domain.Card
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&card.ID, &card.DeckID, &card.Front, &card.Back,
			&card.ChunkPosition, &card.Position, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		if createdAt.Valid {
			card.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			card.UpdatedAt = updatedAt.Time
		}
		deck.Cards = append(deck.Cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}

	return deck, nil
}

// ListDecks returns all decks without their cards, newest first.
func (s *deckStore) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, source_uri, model, created_at, updated_at
		FROM decks
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decks: %w", err)
	}

	return decks, nil
}

// DeleteDeck removes a deck; its cards go with it via the cascade.
func (s *deckStore) DeleteDeck(ctx context.Context, deckID string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", deckID)
	if err != nil {
		return fmt.Errorf("deleting deck: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCard replaces a single card's front/back.
func (s *deckStore) UpdateCard(ctx context.Context, card *domain.Card) error {
	if card == nil || card.ID == "" {
		return fmt.Errorf("%w: card without id", domain.ErrInvalidInput)
	}

	card.UpdatedAt = time.Now().UTC()

	result, err := s.store.db.ExecContext(ctx, `
		UPDATE cards SET front = ?, back = ?, updated_at = ?
		WHERE id = ?
	`, card.Front, card.Back, card.UpdatedAt, card.ID)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCard removes a single card from its deck.
func (s *deckStore) DeleteCard(ctx context.Context, cardID string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", cardID)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Close closes the underlying store.
func (s *deckStore) Close() error {
	return s.store.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDeck reads one deck row without its cards.
func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&deck.ID, &deck.Name, &deck.SourceURI, &deck.Model,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning deck: %w", err)
	}
	if createdAt.Valid {
		deck.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		deck.UpdatedAt = updatedAt.Time
	}
	return &deck, nil
}
