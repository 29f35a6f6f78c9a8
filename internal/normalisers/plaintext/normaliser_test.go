package plaintext

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	assert.Contains(t, n.SupportedMIMETypes(), "text/plain")
	assert.Contains(t, n.SupportedMIMETypes(), "text/markdown")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		_, err := New().Normalise(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty content", func(t *testing.T) {
		raw := &driven.RawInput{URI: "notes.txt", Content: []byte("   \n\n  ")}
		_, err := New().Normalise(context.Background(), raw)
		assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	})

	t.Run("cleans and titles", func(t *testing.T) {
		raw := &driven.RawInput{
			URI:      "/tmp/study_notes.txt",
			MIMEType: "text/plain",
			Content:  []byte("first line\r\nsecond   line\n"),
		}

		doc, err := New().Normalise(context.Background(), raw)
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "study notes", doc.Title)
		assert.Equal(t, "first line\nsecond line", doc.Content)
		assert.Equal(t, "text/plain", doc.Metadata["mime_type"])
	})

	t.Run("invalid utf-8 is replaced", func(t *testing.T) {
		// Latin-1 "café" with a raw 0xE9 byte.
		raw := &driven.RawInput{
			URI:     "notes.txt",
			Content: []byte{'c', 'a', 'f', 0xE9, ' ', 'n', 'o', 't', 'e', 's'},
		}

		doc, err := New().Normalise(context.Background(), raw)
		require.NoError(t, err)

		assert.True(t, utf8.ValidString(doc.Content))
		assert.Equal(t, "caf� notes", doc.Content)
		// Round-tripping through runes must not change the content, so
		// chunk concatenation reproduces the document exactly.
		assert.Equal(t, doc.Content, string([]rune(doc.Content)))
	})
}
