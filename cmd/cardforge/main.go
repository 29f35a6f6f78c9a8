// Command cardforge generates, stores, studies, and exports flashcard
// decks built from notes by an LLM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/ai"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/config/file"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driven/storage/sqlite"
	"github.com/cardforge-labs/cardforge-cli/internal/adapters/driving/cli"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/core/services"
	"github.com/cardforge-labs/cardforge-cli/internal/normalisers"
	"github.com/cardforge-labs/cardforge-cli/internal/postprocessors"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("init config store: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("init prompt store: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open deck database: %w", err)
	}
	defer store.Close()

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Commands that never talk to the LLM must work without one; the
	// fallback generator carries the configuration error to the first
	// generation attempt.
	generator := ai.GeneratorOrUnavailable(&settings.LLM, promptStore)
	defer generator.Close()

	decks := store.DeckStore()

	generateService := services.NewGenerateService(
		generator,
		decks,
		normalisers.NewDefaultRegistry(),
		func(cfg domain.ChunkingConfig) (driven.PostProcessorPipeline, error) {
			return postprocessors.DefaultPipeline(cfg)
		},
		*settings,
	)

	cli.SetVersion(version)
	cli.SetGenerateService(generateService)
	cli.SetDeckService(services.NewDeckService(decks))
	cli.SetExportService(services.NewExportService(decks))
	cli.SetSettingsService(settingsService)
	cli.SetLLMValidator(ai.ValidateConfig)

	return cli.ExecuteContext(ctx)
}
