// Package cli implements the cardforge command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
	"github.com/cardforge-labs/cardforge-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by the composition root before Execute.
var (
	generateService driving.GenerateService
	deckService     driving.DeckService
	exportService   driving.ExportService
	settingsService driving.SettingsService

	// llmValidator pings a provider configuration. Optional; the wizard
	// skips validation when unset.
	llmValidator func(*domain.LLMSettings) error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cardforge",
	Short: "Turn notes into flashcards with an LLM",
	Long: `Cardforge generates study flashcards from notes, slides, and papers.

Point it at a text, markdown, PDF, or DOCX file (or pipe text in) and it
splits the content into chunks, asks an LLM for question/answer cards,
and stores the result as a deck you can review, edit, and export to CSV
or Anki.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context so
// long-running commands stop on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetGenerateService injects the generate service.
func SetGenerateService(s driving.GenerateService) {
	generateService = s
}

// SetDeckService injects the deck service.
func SetDeckService(s driving.DeckService) {
	deckService = s
}

// SetExportService injects the export service.
func SetExportService(s driving.ExportService) {
	exportService = s
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetLLMValidator injects the provider connectivity check used by the
// settings wizard.
func SetLLMValidator(fn func(*domain.LLMSettings) error) {
	llmValidator = fn
}
