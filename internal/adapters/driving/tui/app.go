package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/messages"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/styles"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/views/browse"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui/views/study"
)

// Mode selects which view the app starts in.
type Mode int

const (
	// ModeStudy runs a flip-and-grade study session.
	ModeStudy Mode = iota
	// ModeBrowse opens the card list for editing.
	ModeBrowse
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// deckID identifies the deck being studied or edited.
	deckID string

	// studyView is the study session view component.
	studyView *study.View

	// browseView is the card list and editing view component.
	browseView *browse.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnView is where esc from help goes back to.
	returnView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application for the given deck and mode.
func NewApp(ports *Ports, deckID string, mode Mode) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if deckID == "" {
		return nil, fmt.Errorf("creating app: deck id is required")
	}

	s := styles.DefaultStyles()
	studyView := study.NewView(s)
	browseView := browse.NewView(s, ports.Deck)

	currentView := messages.ViewStudy
	if mode == ModeBrowse {
		currentView = messages.ViewBrowse
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		deckID:      deckID,
		studyView:   studyView,
		browseView:  browseView,
		currentView: currentView,
		returnView:  currentView,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("cardforge"),
		a.loadDeck(),
	)
}

// loadDeck returns a command that fetches the deck from the service.
func (a *App) loadDeck() tea.Cmd {
	return func() tea.Msg {
		deck, err := a.ports.Deck.Get(a.ctx, a.deckID)
		return messages.DeckLoaded{Deck: deck, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.studyView.SetDimensions(msg.Width, msg.Height)
		a.browseView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = a.returnView
			}
			return a, nil
		}

		// Help toggle, except while typing in the edit form
		if msg.String() == "?" && !a.browseView.Editing() {
			a.returnView = a.currentView
			a.currentView = messages.ViewHelp
			return a, nil
		}

		// Tab switches between studying and browsing the same deck.
		if msg.String() == "tab" && !a.browseView.Editing() {
			if a.currentView == messages.ViewStudy {
				a.currentView = messages.ViewBrowse
			} else if a.currentView == messages.ViewBrowse {
				a.currentView = messages.ViewStudy
			}
			return a, nil
		}

		switch a.currentView {
		case messages.ViewStudy:
			a.studyView, cmd = a.studyView.Update(msg)
			return a, cmd
		case messages.ViewBrowse:
			a.browseView, cmd = a.browseView.Update(msg)
			return a, cmd
		case messages.ViewHelp:
		}
		return a, nil

	case messages.DeckLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		// Both views hold the deck so switching stays cheap.
		a.studyView, _ = a.studyView.Update(msg)
		a.browseView, _ = a.browseView.Update(msg)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewStudy:
		a.studyView, cmd = a.studyView.Update(msg)
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewStudy:
		return a.studyView.View()
	case messages.ViewBrowse:
		return a.browseView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.studyView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Study:
  space/enter  Show answer
  y            Mark correct
  n            Mark needs review (card resurfaces later)
  p/←          Previous card
  s            Shuffle and restart
  r            Restart in the same order

Browse:
  j/k, ↑/↓     Navigate cards
  e            Edit card
  d            Delete card
  tab          Switch edit field
  enter        Save edit
  esc          Cancel

Global:
  tab          Switch between study and browse
  ?            Toggle help
  q, ctrl+c    Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// StudyView returns the study view component (for testing).
func (a *App) StudyView() *study.View {
	return a.studyView
}

// BrowseView returns the browse view component (for testing).
func (a *App) BrowseView() *browse.View {
	return a.browseView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.studyView.SetDimensions(width, height)
	a.browseView.SetDimensions(width, height)
}
