package study

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/messages"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

func testDeck(n int) *domain.Deck {
	deck := &domain.Deck{ID: "deck-1", Name: "Biology"}
	for i := 0; i < n; i++ {
		deck.Cards = append(deck.Cards, domain.Card{
			ID:     fmt.Sprintf("card-%d", i),
			DeckID: "deck-1",
			Front:  fmt.Sprintf("Q%d", i),
			Back:   fmt.Sprintf("A%d", i),
		})
	}
	return deck
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// orderedView returns a view over n cards in deterministic card order.
func orderedView(n int) *View {
	v := NewView(nil)
	v.SetDeck(testDeck(n))
	// Restart without shuffle to get identity order.
	v, _ = v.Update(keyMsg("r"))
	return v
}

func TestSetDeck_OrderIsPermutation(t *testing.T) {
	v := NewView(nil)
	v.SetDeck(testDeck(5))

	order := v.Order()
	require.Len(t, order, 5)

	seen := make(map[int]bool)
	for _, idx := range order {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
		assert.False(t, seen[idx], "duplicate index %d in order", idx)
		seen[idx] = true
	}
}

func TestFlipThenCorrect_Advances(t *testing.T) {
	v := orderedView(3)

	v, _ = v.Update(keyMsg("enter"))
	assert.True(t, v.ShowingAnswer())

	v, _ = v.Update(keyMsg("y"))
	assert.Equal(t, 1, v.Index())
	assert.Equal(t, 1, v.Correct())
	assert.False(t, v.ShowingAnswer(), "flip state resets on the next card")
}

func TestGradeBeforeFlip_Ignored(t *testing.T) {
	v := orderedView(3)

	v, _ = v.Update(keyMsg("y"))
	assert.Equal(t, 0, v.Index())
	assert.Equal(t, 0, v.Correct())

	v, _ = v.Update(keyMsg("n"))
	assert.Equal(t, 0, v.NeedsReview())
}

func TestNeedsReview_ResurfacesAtEnd(t *testing.T) {
	v := orderedView(3)

	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("n"))

	assert.Equal(t, []int{1, 2, 0}, v.Order())
	assert.Equal(t, 0, v.Index(), "index stays so the next card takes this slot")
	assert.Equal(t, 1, v.NeedsReview())
	require.NotNil(t, v.CurrentCard())
	assert.Equal(t, "Q1", v.CurrentCard().Front)
}

func TestNeedsReview_RepeatDoesNotInflateCount(t *testing.T) {
	v := orderedView(2)

	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("n"))
	require.Equal(t, 1, v.NeedsReview())

	// Grade the other card, then mark the resurfaced card again.
	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("y"))
	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("n"))

	assert.Equal(t, 1, v.NeedsReview())
}

func TestNeedsReviewThenCorrect_MovesCounters(t *testing.T) {
	v := orderedView(2)

	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("n"))
	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("y"))

	// The reviewed card resurfaces; grading it correct clears the
	// review count.
	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("y"))

	assert.Equal(t, 2, v.Correct())
	assert.Equal(t, 0, v.NeedsReview())
	assert.True(t, v.Completed())
}

func TestCorrectThenNeedsReview_AdjustsCorrectDown(t *testing.T) {
	v := orderedView(2)

	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("y"))
	require.Equal(t, 1, v.Correct())

	// Step back to the mastered card and downgrade it.
	v, _ = v.Update(keyMsg("p"))
	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("n"))

	assert.Equal(t, 0, v.Correct())
	assert.Equal(t, 1, v.NeedsReview())
}

func TestCompletion(t *testing.T) {
	v := orderedView(2)

	for i := 0; i < 2; i++ {
		v, _ = v.Update(keyMsg("enter"))
		v, _ = v.Update(keyMsg("y"))
	}

	assert.True(t, v.Completed())
	assert.Nil(t, v.CurrentCard())
	assert.Contains(t, v.View(), "Deck complete")
}

func TestShuffle_ResetsSession(t *testing.T) {
	v := orderedView(3)

	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("y"))
	require.Equal(t, 1, v.Correct())

	v, _ = v.Update(keyMsg("s"))

	assert.Equal(t, 0, v.Index())
	assert.Equal(t, 0, v.Correct())
	assert.Equal(t, 0, v.NeedsReview())
	assert.Len(t, v.Order(), 3)
}

func TestPrev_ResetsFlip(t *testing.T) {
	v := orderedView(3)

	v, _ = v.Update(keyMsg("enter"))
	v, _ = v.Update(keyMsg("y"))
	v, _ = v.Update(keyMsg("enter"))
	require.True(t, v.ShowingAnswer())

	v, _ = v.Update(keyMsg("p"))
	assert.Equal(t, 0, v.Index())
	assert.False(t, v.ShowingAnswer())
}

func TestDeckLoaded_Error(t *testing.T) {
	v := NewView(nil)

	v, _ = v.Update(messages.DeckLoaded{Err: errors.New("not found")})

	assert.Error(t, v.Err())
}

func TestView_EmptyDeck(t *testing.T) {
	v := NewView(nil)
	v.SetDeck(&domain.Deck{ID: "deck-1", Name: "Empty"})

	assert.Contains(t, v.View(), "No cards to study")
}

func TestView_ShowsProgress(t *testing.T) {
	v := orderedView(3)
	v.SetDimensions(80, 24)

	out := v.View()
	assert.Contains(t, out, "Biology")
	assert.Contains(t, out, "progress: 0/3")
	assert.Contains(t, out, "Q0")
	assert.NotContains(t, out, "A0", "answer hidden until flipped")

	v, _ = v.Update(keyMsg("enter"))
	assert.Contains(t, v.View(), "A0")
}
