package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage generated decks",
	Long:  `List, inspect, and delete locally stored flashcard decks.`,
	RunE:  runDeckList,
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all decks",
	RunE:  runDeckList,
}

var deckShowCmd = &cobra.Command{
	Use:   "show [deck-id]",
	Short: "Show a deck's cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckShow,
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete [deck-id]",
	Short: "Delete a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckDelete,
}

func init() {
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckDeleteCmd)
	rootCmd.AddCommand(deckCmd)
}

func runDeckList(cmd *cobra.Command, _ []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	decks, err := deckService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list decks: %w", err)
	}

	if len(decks) == 0 {
		cmd.Println("No decks yet. Run 'cardforge generate' to create one.")
		return nil
	}

	cmd.Println("Decks:")
	cmd.Println()
	for i := range decks {
		cmd.Printf("  %s  %s\n", decks[i].ID, decks[i].Name)
		cmd.Printf("      model: %s, source: %s, created: %s\n",
			decks[i].Model, decks[i].SourceURI, decks[i].CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDeckShow(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	deck, err := deckService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get deck: %w", err)
	}

	cmd.Printf("%s (%d cards)\n", deck.Name, len(deck.Cards))
	cmd.Println()
	for i := range deck.Cards {
		cmd.Printf("  [%d] %s\n", i+1, deck.Cards[i].Front)
		cmd.Printf("      %s\n", deck.Cards[i].Back)
		if verbose {
			cmd.Printf("      id: %s, chunk: %d\n", deck.Cards[i].ID, deck.Cards[i].ChunkPosition)
		}
	}
	return nil
}

func runDeckDelete(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	if err := deckService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}

	cmd.Printf("Deleted deck %s\n", args[0])
	return nil
}
