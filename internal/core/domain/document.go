package domain

import "time"

// Document is the normalised input text for one generation run.
// It is immutable once created and discarded after chunking.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path, or "-" for stdin).
	URI string

	// Title is the human-readable title, usually derived from the filename.
	Title string

	// Content is the full text content after normalisation.
	Content string

	// Metadata contains arbitrary key-value pairs (mime type, page count).
	Metadata map[string]any

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a contiguous, overlapping window of a document sized to fit
// within an LLM context budget. Chunks are produced in source order.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// TokenEstimate is the approximate token count of Content, measured
	// by the token counter that produced the chunk.
	TokenEstimate int

	// OverlapRunes is the number of leading runes shared with the tail of
	// the previous chunk. Zero for the first chunk. Concatenating each
	// chunk's content minus this prefix reconstructs the document.
	OverlapRunes int
}

// Suffix returns the non-overlapping part of the chunk content.
// Concatenating the suffixes of all chunks in order yields the original
// document text exactly.
func (c Chunk) Suffix() string {
	if c.OverlapRunes <= 0 {
		return c.Content
	}
	runes := []rune(c.Content)
	if c.OverlapRunes >= len(runes) {
		return ""
	}
	return string(runes[c.OverlapRunes:])
}
