package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file type or normaliser.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidChunkConfig indicates invalid chunking parameters
	// (non-positive sizes, or overlap >= target size). It is surfaced
	// before any generation call is made.
	ErrInvalidChunkConfig = errors.New("invalid chunking configuration")

	// ErrLLMUnavailable indicates no LLM provider is configured.
	// Generation is impossible without one.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmptyDeck indicates an operation that needs cards was given none.
	// Exporting an empty deck is a notice, not a hard failure.
	ErrEmptyDeck = errors.New("deck contains no cards")

	// ErrNoCards indicates the model reply contained no parseable cards.
	ErrNoCards = errors.New("no cards parsed from model reply")

	// ErrEmptyDocument indicates the input produced no usable text.
	ErrEmptyDocument = errors.New("document contains no text")
)
