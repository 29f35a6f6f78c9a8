package driven

// Prompt names for the PromptStore.
const (
	// PromptCards is the per-chunk card generation prompt template.
	PromptCards = "cards"
)

// PromptStore loads user-customisable prompt templates.
// Implementations return an error when no override exists; callers fall
// back to the built-in default.
type PromptStore interface {
	// Load returns the prompt template with the given name.
	Load(name string) (string, error)
}
