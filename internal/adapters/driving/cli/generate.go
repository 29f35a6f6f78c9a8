package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
	"github.com/cardforge-labs/cardforge-cli/internal/logger"
)

var (
	generateDeckName  string
	generateCards     int
	generateChunkSize int
	generateOverlap   int
	generateOutput    string
	generateFormat    string
	generateWatch     bool
)

// watchDebounce coalesces editor save bursts into one regeneration.
const watchDebounce = 500 * time.Millisecond

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a flashcard deck from a file",
	Long: `Generate question/answer flashcards from a text, markdown, PDF, or
DOCX file. Use "-" to read from stdin:

  cardforge generate notes.pdf --cards 40
  pbpaste | cardforge generate - --deck "lecture 12"

The deck is saved locally; use --output to also export it in one step.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateDeckName, "deck", "d", "", "deck name (default: document title)")
	generateCmd.Flags().IntVarP(&generateCards, "cards", "n", 0, "target number of cards (default: configured)")
	generateCmd.Flags().IntVar(&generateChunkSize, "chunk-size", 0, "chunk size in tokens (default: configured)")
	generateCmd.Flags().IntVar(&generateOverlap, "overlap", 0, "chunk overlap in tokens (default: configured)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "also export the deck to this file")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "csv", "export format for --output (csv, anki)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "regenerate whenever the file changes")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := args[0]

	if generateService == nil {
		return errors.New("generate service not configured")
	}

	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}

	installProgress(cmd)

	ctx := cmd.Context()
	if err := generateOnce(ctx, cmd, path, opts); err != nil {
		return err
	}

	if generateWatch {
		if path == "-" {
			return errors.New("--watch requires a file, not stdin")
		}
		return watchAndRegenerate(ctx, cmd, path, opts)
	}
	return nil
}

// generateOptions assembles run options from flags, pulling chunking
// defaults from settings only when an override flag was given.
func generateOptions(cmd *cobra.Command) (driving.GenerateOptions, error) {
	opts := driving.GenerateOptions{
		DeckName: generateDeckName,
		Cards:    generateCards,
	}

	if cmd.Flags().Changed("chunk-size") || cmd.Flags().Changed("overlap") {
		if settingsService == nil {
			return opts, errors.New("settings service not configured")
		}
		settings, err := settingsService.Get()
		if err != nil {
			return opts, fmt.Errorf("load settings: %w", err)
		}

		chunking := settings.Chunking
		if cmd.Flags().Changed("chunk-size") {
			chunking.TargetTokens = generateChunkSize
		}
		if cmd.Flags().Changed("overlap") {
			chunking.OverlapTokens = generateOverlap
		}
		opts.Chunking = &chunking
	}

	return opts, nil
}

// installProgress wires per-chunk progress output.
func installProgress(cmd *cobra.Command) {
	generateService.SetProgress(func(position, total, cards int, err error) {
		if err != nil {
			cmd.Printf("  chunk %d/%d: failed (%v)\n", position+1, total, err)
			return
		}
		cmd.Printf("  chunk %d/%d: %d cards\n", position+1, total, cards)
	})
}

func generateOnce(ctx context.Context, cmd *cobra.Command, path string, opts driving.GenerateOptions) error {
	report, err := generateService.GenerateFromFile(ctx, path, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNoCards) && report != nil {
			printFailures(cmd, report)
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	cmd.Printf("Generated %d cards from %d chunks", report.Cards, report.Chunks)
	if report.Failed() > 0 {
		cmd.Printf(" (%d chunks failed)", report.Failed())
	}
	cmd.Println()
	cmd.Printf("Deck ID: %s\n", report.DeckID)
	printFailures(cmd, report)

	if generateOutput != "" {
		if err := exportDeckToFile(ctx, cmd, report.DeckID, generateFormat, generateOutput); err != nil {
			return err
		}
	}
	return nil
}

func printFailures(cmd *cobra.Command, report *domain.GenerationReport) {
	if report == nil || report.Failed() == 0 {
		return
	}
	cmd.Println("Failed chunks:")
	for position, msg := range report.Failures {
		cmd.Printf("  chunk %d: %s\n", position+1, msg)
	}
}

// watchAndRegenerate reruns generation whenever the source file changes.
// Editors typically replace the file on save, so the parent directory is
// watched rather than the file itself.
func watchAndRegenerate(ctx context.Context, cmd *cobra.Command, path string, opts driving.GenerateOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	cmd.Printf("Watching %s (ctrl-c to stop)\n", path)

	var debounce *time.Timer
	var debounceC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
				debounceC = debounce.C
			} else {
				debounce.Reset(watchDebounce)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			cmd.Printf("\n%s changed, regenerating\n", path)
			if err := generateOnce(ctx, cmd, path, opts); err != nil {
				// A broken intermediate save should not kill the watch.
				logger.Warn("Regeneration failed: %v", err)
				cmd.Printf("Regeneration failed: %v\n", err)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", watchErr)
		}
	}
}

// exportDeckToFile writes a deck export to the given path.
func exportDeckToFile(ctx context.Context, cmd *cobra.Command, deckID, format, path string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	exportFormat := driving.ExportFormat(format)
	if !exportFormat.IsValid() {
		return fmt.Errorf("unknown format %q (csv, anki)", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := exportService.Export(ctx, deckID, exportFormat, f); err != nil {
		// An empty deck is a notice, not a failure. Drop the file so a
		// zero-byte export is not left behind.
		if errors.Is(err, domain.ErrEmptyDeck) {
			f.Close()
			os.Remove(path)
			cmd.Println("Deck has no cards; nothing exported.")
			return nil
		}
		return fmt.Errorf("export deck: %w", err)
	}

	cmd.Printf("Exported to %s\n", path)
	return nil
}
