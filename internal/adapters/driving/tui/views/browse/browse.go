// Package browse provides the card list and editing view.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/keymap"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/messages"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/styles"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
)

// mode tracks what the browse view is currently doing.
type mode int

const (
	modeList mode = iota
	modeEdit
	modeConfirmDelete
)

// field identifies which edit input has focus.
type field int

const (
	fieldFront field = iota
	fieldBack
)

// View is the card browse and edit view.
type View struct {
	styles      *styles.Styles
	keys        *keymap.KeyMap
	deckService driving.DeckService

	ctx  context.Context
	deck *domain.Deck

	mode     mode
	selected int

	frontInput textinput.Model
	backInput  textinput.Model
	focused    field

	statusMsg string
	err       error

	width  int
	height int
	ready  bool
}

// NewView creates a new browse view.
func NewView(s *styles.Styles, deckService driving.DeckService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	frontInput := textinput.New()
	frontInput.Placeholder = "Question"
	frontInput.CharLimit = 512

	backInput := textinput.New()
	backInput.Placeholder = "Answer"
	backInput.CharLimit = 512

	return &View{
		styles:      s,
		keys:        keymap.DefaultKeyMap(),
		deckService: deckService,
		ctx:         context.Background(),
		frontInput:  frontInput,
		backInput:   backInput,
		width:       80,
		height:      24,
	}
}

// Init initialises the browse view.
func (v *View) Init() tea.Cmd {
	return nil
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDeck loads the deck into the view.
func (v *View) SetDeck(deck *domain.Deck) {
	v.deck = deck
	v.mode = modeList
	v.selected = 0
	v.statusMsg = ""
}

// Update handles messages for the browse view.
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

	case messages.CardSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.applySavedCard(msg.Card)
		v.mode = modeList
		v.err = nil
		v.statusMsg = "saved"
		return v, nil

	case messages.CardDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.removeCard(msg.CardID)
		v.mode = modeList
		v.err = nil
		v.statusMsg = "card deleted"
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeEdit:
			return v.handleEditKey(msg)
		case modeConfirmDelete:
			return v.handleConfirmKey(msg)
		case modeList:
			return v.handleListKey(msg)
		}
	}

	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keys.Quit):
		return v, tea.Quit

	case keymap.Matches(keyStr, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}

	case keymap.Matches(keyStr, v.keys.Down):
		if v.deck != nil && v.selected < len(v.deck.Cards)-1 {
			v.selected++
		}

	case keymap.Matches(keyStr, v.keys.Edit):
		if v.currentCard() != nil {
			v.startEdit()
			return v, textinput.Blink
		}

	case keymap.Matches(keyStr, v.keys.Delete):
		if v.currentCard() != nil {
			v.mode = modeConfirmDelete
		}
	}

	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = modeList
		return v, nil

	case "tab", "shift+tab":
		v.toggleFocus()
		return v, textinput.Blink

	case "enter":
		return v, v.saveEdit()
	}

	var cmd tea.Cmd
	if v.focused == fieldFront {
		v.frontInput, cmd = v.frontInput.Update(msg)
	} else {
		v.backInput, cmd = v.backInput.Update(msg)
	}
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y":
		return v, v.deleteCard()
	case "n", "esc":
		v.mode = modeList
	}
	return v, nil
}

func (v *View) startEdit() {
	card := v.currentCard()
	v.frontInput.SetValue(card.Front)
	v.backInput.SetValue(card.Back)
	v.focused = fieldFront
	v.frontInput.Focus()
	v.backInput.Blur()
	v.mode = modeEdit
	v.statusMsg = ""
}

func (v *View) toggleFocus() {
	if v.focused == fieldFront {
		v.focused = fieldBack
		v.frontInput.Blur()
		v.backInput.Focus()
	} else {
		v.focused = fieldFront
		v.backInput.Blur()
		v.frontInput.Focus()
	}
}

// saveEdit returns a command that persists the edited card.
func (v *View) saveEdit() tea.Cmd {
	card := v.currentCard()
	if card == nil {
		return nil
	}

	updated := *card
	updated.Front = strings.TrimSpace(v.frontInput.Value())
	updated.Back = strings.TrimSpace(v.backInput.Value())

	ctx := v.ctx
	svc := v.deckService
	return func() tea.Msg {
		if svc == nil {
			return messages.CardSaved{Err: fmt.Errorf("deck service not available")}
		}
		err := svc.UpdateCard(ctx, &updated)
		return messages.CardSaved{Card: updated, Err: err}
	}
}

// deleteCard returns a command that removes the selected card.
func (v *View) deleteCard() tea.Cmd {
	card := v.currentCard()
	if card == nil {
		return nil
	}

	ctx := v.ctx
	svc := v.deckService
	cardID := card.ID
	return func() tea.Msg {
		if svc == nil {
			return messages.CardDeleted{Err: fmt.Errorf("deck service not available")}
		}
		err := svc.DeleteCard(ctx, cardID)
		return messages.CardDeleted{CardID: cardID, Err: err}
	}
}

func (v *View) applySavedCard(card domain.Card) {
	if v.deck == nil {
		return
	}
	for i := range v.deck.Cards {
		if v.deck.Cards[i].ID == card.ID {
			v.deck.Cards[i] = card
			return
		}
	}
}

func (v *View) removeCard(cardID string) {
	if v.deck == nil {
		return
	}
	for i := range v.deck.Cards {
		if v.deck.Cards[i].ID == cardID {
			v.deck.Cards = append(v.deck.Cards[:i], v.deck.Cards[i+1:]...)
			break
		}
	}
	if v.selected >= len(v.deck.Cards) && v.selected > 0 {
		v.selected--
	}
}

func (v *View) currentCard() *domain.Card {
	if v.deck == nil || len(v.deck.Cards) == 0 || v.selected >= len(v.deck.Cards) {
		return nil
	}
	return &v.deck.Cards[v.selected]
}

// View renders the browse view.
func (v *View) View() string {
	var b strings.Builder

	if v.deck == nil {
		b.WriteString(v.styles.Muted.Render("Loading deck..."))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(v.deck.Name))
	b.WriteString(" ")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("(%d cards)", len(v.deck.Cards))))
	b.WriteString("\n\n")

	switch v.mode {
	case modeEdit:
		v.renderEdit(&b)
	case modeConfirmDelete:
		v.renderConfirm(&b)
	case modeList:
		v.renderList(&b)
	}

	if v.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.statusMsg))
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}

	return b.String()
}

func (v *View) renderList(b *strings.Builder) {
	if len(v.deck.Cards) == 0 {
		b.WriteString(v.styles.Muted.Render("This deck has no cards."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[q] quit"))
		return
	}

	for i := range v.deck.Cards {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(truncate(v.deck.Cards[i].Front, v.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	card := v.deck.Cards[v.selected]
	b.WriteString(v.styles.Muted.Render("answer: "))
	b.WriteString(v.styles.Normal.Render(truncate(card.Back, v.width-10)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [e] edit  [d] delete  [q] quit"))
}

func (v *View) renderEdit(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("Edit card"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("front"))
	b.WriteString("\n")
	b.WriteString(v.frontInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("back"))
	b.WriteString("\n")
	b.WriteString(v.backInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] save  [esc] cancel"))
}

func (v *View) renderConfirm(b *strings.Builder) {
	card := v.currentCard()
	b.WriteString(v.styles.Warning.Render("Delete this card?"))
	b.WriteString("\n\n")
	if card != nil {
		b.WriteString(v.styles.Normal.Render(truncate(card.Front, v.width-2)))
		b.WriteString("\n\n")
	}
	b.WriteString(v.styles.Help.Render("[y] delete  [n] cancel"))
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Deck returns the deck shown by the view.
func (v *View) Deck() *domain.Deck {
	return v.deck
}

// Selected returns the index of the highlighted card.
func (v *View) Selected() int {
	return v.selected
}

// Editing reports whether the edit form is open.
func (v *View) Editing() bool {
	return v.mode == modeEdit
}

// ConfirmingDelete reports whether the delete prompt is open.
func (v *View) ConfirmingDelete() bool {
	return v.mode == modeConfirmDelete
}

// FrontValue returns the current front input value (for testing).
func (v *View) FrontValue() string {
	return v.frontInput.Value()
}

// BackValue returns the current back input value (for testing).
func (v *View) BackValue() string {
	return v.backInput.Value()
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
