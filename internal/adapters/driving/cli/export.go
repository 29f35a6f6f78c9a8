package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [deck-id]",
	Short: "Export a deck to CSV or Anki format",
	Long: `Export a deck's cards for use in other tools.

Formats:
  csv   - front,back with a header row (spreadsheets)
  anki  - tab-separated, no header (Anki "Basic" import)

Without --output the export is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format (csv, anki)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	if exportOutput != "" {
		return exportDeckToFile(cmd.Context(), cmd, args[0], exportFormat, exportOutput)
	}

	format := driving.ExportFormat(exportFormat)
	if !format.IsValid() {
		return errors.New("unknown format (csv, anki)")
	}
	if err := exportService.Export(cmd.Context(), args[0], format, cmd.OutOrStdout()); err != nil {
		// An empty deck is a notice, not a failure.
		if errors.Is(err, domain.ErrEmptyDeck) {
			cmd.Println("Deck has no cards; nothing exported.")
			return nil
		}
		return err
	}
	return nil
}
