package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, chunking, and generation options.

Use subcommands to change specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set one setting by its dotted key, for example:

  cardforge settings set llm.model llama3.1
  cardforge settings set chunking.target_tokens 800
  cardforge settings set generate.cards 40`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the LLM provider step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() || settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Target tokens: %d\n", settings.Chunking.TargetTokens)
	cmd.Printf("  Overlap tokens: %d\n", settings.Chunking.OverlapTokens)
	cmd.Printf("  Chars per token: %d\n", settings.Chunking.CharsPerToken)
	cmd.Printf("  Token counter: %s\n", settings.Chunking.Counter)
	cmd.Println()

	cmd.Println("[Generation]")
	cmd.Printf("  Cards per deck: %d\n", settings.Generate.Cards)
	cmd.Printf("  Concurrency: %d\n", settings.Generate.Concurrency)
	if settings.Generate.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %.1f req/s\n", settings.Generate.RequestsPerSecond)
	} else {
		cmd.Printf("  Rate limit: off\n")
	}
	cmd.Printf("  Temperature: %.1f\n", settings.Generate.Temperature)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Cardforge Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// Step 1: Provider
	cmd.Println("Step 1: Select LLM Provider")
	cmd.Println("---------------------------")
	providers := []domain.AIProvider{
		domain.AIProviderOllama,
		domain.AIProviderOpenAI,
		domain.AIProviderAnthropic,
	}
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	provider := providers[idx-1]
	settings.LLM.Provider = provider

	// Step 2: Model
	cmd.Println("\nStep 2: Model")
	cmd.Println("-------------")
	defaultModel := defaultModelFor(provider)
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}
	settings.LLM.Model = model

	// Step 3: Credentials / endpoint
	cmd.Println("\nStep 3: Connection")
	cmd.Println("------------------")
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey := readPassword()
		cmd.Println()
		if apiKey == "" && settings.LLM.APIKey == "" {
			return errors.New("API key is required for this provider")
		}
		if apiKey != "" {
			settings.LLM.APIKey = apiKey
		}
	} else {
		cmd.Printf("Enter base URL [%s]: ", "http://localhost:11434")
		baseURL := readLine(reader)
		if baseURL != "" {
			settings.LLM.BaseURL = baseURL
		}
	}

	// Step 4: Generation defaults
	cmd.Println("\nStep 4: Generation Defaults")
	cmd.Println("---------------------------")
	cmd.Printf("Cards per deck [%d]: ", settings.Generate.Cards)
	if input := readLine(reader); input != "" {
		if n, err := strconv.Atoi(input); err == nil && n > 0 {
			settings.Generate.Cards = n
		}
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	cmd.Println("\nConfiguration saved.")

	if llmValidator != nil {
		cmd.Print("Validating provider connectivity... ")
		if err := llmValidator(&settings.LLM); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			cmd.Println("Settings were saved anyway; fix the provider and rerun the wizard.")
			return nil
		}
		cmd.Println("OK")
	}

	return nil
}

// defaultModelFor suggests a sensible model per provider.
func defaultModelFor(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return "gpt-4o-mini"
	case domain.AIProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	default:
		return "llama3.1"
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
