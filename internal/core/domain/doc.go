// Package domain contains the core business entities for cardforge:
// documents, chunks, cards, decks, and their validation rules.
// The domain layer has no dependencies on adapters or infrastructure.
package domain
