package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

func TestHeuristicCounter_Count(t *testing.T) {
	c := NewHeuristicCounter(4)

	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 1, c.Count("a"))
	assert.Equal(t, 1, c.Count("abcd"))
	assert.Equal(t, 2, c.Count("abcde"))
	assert.Equal(t, 750, c.Count(strings.Repeat("A", 3000)))
}

func TestHeuristicCounter_CountsRunesNotBytes(t *testing.T) {
	c := NewHeuristicCounter(4)

	// 4 runes, 8 bytes
	assert.Equal(t, 1, c.Count("äöüß"))
}

func TestHeuristicCounter_DefaultRatio(t *testing.T) {
	c := NewHeuristicCounter(0)

	assert.Equal(t, 1, c.Count(strings.Repeat("x", domain.DefaultCharsPerToken)))
}

func TestHeuristicCounter_Monotonic(t *testing.T) {
	c := NewHeuristicCounter(3)

	text := "the quick brown fox jumps over the lazy dog"
	prev := 0
	for i := 0; i <= len(text); i++ {
		n := c.Count(text[:i])
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
}

func TestForConfig(t *testing.T) {
	t.Run("heuristic", func(t *testing.T) {
		counter, err := ForConfig(domain.ChunkingConfig{Counter: domain.TokenCounterHeuristic, CharsPerToken: 4})
		require.NoError(t, err)
		assert.IsType(t, &HeuristicCounter{}, counter)
	})

	t.Run("empty defaults to heuristic", func(t *testing.T) {
		counter, err := ForConfig(domain.ChunkingConfig{CharsPerToken: 4})
		require.NoError(t, err)
		assert.IsType(t, &HeuristicCounter{}, counter)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ForConfig(domain.ChunkingConfig{Counter: "exact"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
	})
}
