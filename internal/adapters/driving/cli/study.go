package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/tui"
)

var studyCmd = &cobra.Command{
	Use:   "study [deck-id]",
	Short: "Study a deck in the terminal",
	Long: `Start an interactive study session over a deck.

Cards are shown in shuffled order. Reveal the answer, then grade
yourself; cards marked "needs review" resurface at the end of the
session.

Controls:
  space    Show answer
  y        Correct
  n        Needs review
  p        Previous card
  s        Shuffle
  ?        Help
  q        Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runStudy,
}

var editCmd = &cobra.Command{
	Use:   "edit [deck-id]",
	Short: "Edit a deck's cards in the terminal",
	Long: `Browse a deck's cards and edit or delete them interactively.
Edits are saved immediately.

Controls:
  j/k      Navigate cards
  e        Edit card
  d        Delete card
  ?        Help
  q        Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(editCmd)
}

func runStudy(cmd *cobra.Command, args []string) error {
	return runDeckTUI(cmd, args[0], tui.ModeStudy)
}

func runEdit(cmd *cobra.Command, args []string) error {
	return runDeckTUI(cmd, args[0], tui.ModeBrowse)
}

func runDeckTUI(cmd *cobra.Command, deckID string, mode tui.Mode) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	// Panic recovery keeps a stack trace visible after the alt screen closes.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(deckService, exportService)

	app, err := tui.NewApp(ports, deckID, mode)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
