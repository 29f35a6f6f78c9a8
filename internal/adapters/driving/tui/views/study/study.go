// Package study provides the flip-and-grade study session view.
package study

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/keymap"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/messages"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/styles"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

// status tracks how a card has been graded in this session.
type status int

const (
	statusNew status = iota
	statusReview
	statusCorrect
)

// View is the study session view.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	deck *domain.Deck

	// order holds card indices in presentation order. Cards marked
	// needs-review move to the end so they resurface before the
	// session completes.
	order      []int
	idx        int
	showAnswer bool
	statuses   map[int]status
	correct    int
	review     int

	err error

	width  int
	height int
	ready  bool
}

// NewView creates a new study view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		keys:     keymap.DefaultKeyMap(),
		statuses: make(map[int]status),
		width:    80,
		height:   24,
	}
}

// Init initialises the study view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDeck starts a session over the given deck in shuffled order.
func (v *View) SetDeck(deck *domain.Deck) {
	v.deck = deck
	v.reset(true)
}

// reset restarts the session. Grading state is cleared; shuffle controls
// whether the presentation order is randomised.
func (v *View) reset(shuffle bool) {
	n := 0
	if v.deck != nil {
		n = len(v.deck.Cards)
	}
	v.order = make([]int, n)
	for i := range v.order {
		v.order[i] = i
	}
	if shuffle {
		rand.Shuffle(n, func(i, j int) {
			v.order[i], v.order[j] = v.order[j], v.order[i]
		})
	}
	v.idx = 0
	v.showAnswer = false
	v.correct = 0
	v.review = 0
	v.statuses = make(map[int]status, n)
}

// Update handles messages for the study view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.DeckLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.SetDeck(msg.Deck)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keys.Quit):
		return v, tea.Quit

	case keymap.Matches(keyStr, v.keys.Shuffle):
		v.reset(true)
		return v, nil

	case keymap.Matches(keyStr, v.keys.Restart):
		v.reset(false)
		return v, nil
	}

	if v.Completed() {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keys.Flip):
		v.showAnswer = true

	case keymap.Matches(keyStr, v.keys.Prev):
		if v.idx > 0 {
			v.idx--
			v.showAnswer = false
		}

	case keymap.Matches(keyStr, v.keys.Correct):
		// Grading requires the answer to be visible first.
		if v.showAnswer {
			v.gradeCorrect()
		}

	case keymap.Matches(keyStr, v.keys.NeedsReview):
		if v.showAnswer {
			v.gradeNeedsReview()
		}
	}

	return v, nil
}

// gradeCorrect marks the current card known and advances. A card that
// was previously marked needs-review moves out of the review count so
// the counters track current state rather than history.
func (v *View) gradeCorrect() {
	cardIdx := v.order[v.idx]
	prev := v.statuses[cardIdx]
	if prev != statusCorrect {
		v.correct++
		if prev == statusReview {
			v.review--
		}
		v.statuses[cardIdx] = statusCorrect
	}
	v.idx++
	v.showAnswer = false
}

// gradeNeedsReview marks the current card for another pass and moves it
// to the end of the order. The index stays put, so the next card slides
// into the current position.
func (v *View) gradeNeedsReview() {
	cardIdx := v.order[v.idx]
	prev := v.statuses[cardIdx]
	if prev != statusReview {
		v.review++
		if prev == statusCorrect {
			v.correct--
		}
		v.statuses[cardIdx] = statusReview
	}
	v.order = append(v.order[:v.idx], v.order[v.idx+1:]...)
	v.order = append(v.order, cardIdx)
	v.showAnswer = false
}

// View renders the study session.
func (v *View) View() string {
	var b strings.Builder

	if v.deck == nil || len(v.deck.Cards) == 0 {
		b.WriteString(v.styles.Muted.Render("No cards to study."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[q] quit"))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(v.deck.Name))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
		"progress: %d/%d   correct: %d   needs review: %d",
		v.idx, len(v.order), v.correct, v.review,
	)))
	b.WriteString("\n\n")

	if v.Completed() {
		b.WriteString(v.styles.Success.Render("Deck complete!"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] restart  [s] shuffle  [q] quit"))
		return b.String()
	}

	card := v.deck.Cards[v.order[v.idx]]

	b.WriteString(v.styles.Muted.Render("question"))
	b.WriteString("\n")
	b.WriteString(v.styles.CardFace.Render(card.Front))
	b.WriteString("\n")

	switch v.statuses[v.order[v.idx]] {
	case statusReview:
		b.WriteString(v.styles.Chip.Render("marked for review"))
		b.WriteString("\n")
	case statusCorrect:
		b.WriteString(v.styles.Chip.Render("mastered"))
		b.WriteString("\n")
	case statusNew:
	}
	b.WriteString("\n")

	if v.showAnswer {
		b.WriteString(v.styles.Muted.Render("answer"))
		b.WriteString("\n")
		b.WriteString(v.styles.CardFace.Render(card.Back))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[y] correct  [n] needs review  [p] previous  [s] shuffle  [q] quit"))
	} else {
		b.WriteString(v.styles.Muted.Render("press space to show the answer"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[space] show answer  [p] previous  [s] shuffle  [q] quit"))
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Completed reports whether every card has been graded correct.
func (v *View) Completed() bool {
	return v.idx >= len(v.order)
}

// CurrentCard returns the card currently shown, or nil when the
// session is complete or no deck is loaded.
func (v *View) CurrentCard() *domain.Card {
	if v.deck == nil || v.Completed() {
		return nil
	}
	return &v.deck.Cards[v.order[v.idx]]
}

// Index returns the position within the session order.
func (v *View) Index() int {
	return v.idx
}

// Order returns the current presentation order of card indices.
func (v *View) Order() []int {
	return v.order
}

// Correct returns the number of cards currently graded correct.
func (v *View) Correct() int {
	return v.correct
}

// NeedsReview returns the number of cards currently marked for review.
func (v *View) NeedsReview() int {
	return v.review
}

// ShowingAnswer reports whether the current card is flipped.
func (v *View) ShowingAnswer() bool {
	return v.showAnswer
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
