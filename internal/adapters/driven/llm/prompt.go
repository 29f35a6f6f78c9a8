// Package llm holds the prompt templates and helpers shared by the
// provider adapters.
package llm

import (
	"fmt"
	"strings"

	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

// SystemPrompt frames every card generation request.
const SystemPrompt = `You create high-quality study flashcards from the notes you are given. Each card tests one fact, definition, or relationship. Questions are short and specific; answers are concise and self-contained. You never invent facts that are not in the notes.`

// defaultCardPrompt is the fallback template when no PromptStore override
// exists. It takes the card count and the chunk text, in that order.
const defaultCardPrompt = `Create exactly %d flashcards from the notes below.

Rules:
- One card per line, formatted as: question, a single tab character, answer.
- Cover the most important material first.
- Do not number the cards. Do not add commentary or markdown.

Notes:
---
%s
---`

// strictReminder is appended on the retry after a reply that yielded no
// parseable cards.
const strictReminder = `

Output ONLY tab-separated lines. Each line is exactly one card: the question, one tab, the answer. No numbering, no prose before or after, no blank lines, no markdown.`

// CardPrompt renders the user prompt for one chunk, preferring a
// PromptStore override of the template when one exists.
func CardPrompt(store driven.PromptStore, req driven.CardRequest) string {
	tmpl := defaultCardPrompt
	if store != nil {
		if override, err := store.Load(driven.PromptCards); err == nil {
			tmpl = override
		}
	}

	prompt := fmt.Sprintf(tmpl, req.CardCount, req.ChunkText)
	if req.StrictFormat {
		prompt += strictReminder
	}
	return strings.TrimSpace(prompt)
}

// ReplyBudget estimates a max_tokens cap for a reply carrying the
// requested number of cards. Generous enough for verbose models,
// small enough to keep local inference quick.
func ReplyBudget(req driven.CardRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	count := req.CardCount
	if count < 1 {
		count = 1
	}
	return 200 + 90*count
}
