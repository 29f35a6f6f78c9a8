package driven

// TokenCounter estimates the token count of a text.
// Estimates must be monotonic in text length: counting a prefix never
// yields more tokens than counting the whole string. The chunker relies
// on this to binary-search window boundaries.
type TokenCounter interface {
	// Count returns the estimated number of tokens in text.
	Count(text string) int
}
