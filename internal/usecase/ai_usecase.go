package usecase

import "context"

// --- Input DTOs ---

// AskAIInput is one prompt from a caller. CallerKey scopes the conversation
// history: authenticated users pass their user ID, API-token callers pass
// the token string.
type AskAIInput struct {
	CallerKey string
	Prompt    string
}

// --- Output DTOs ---

// AskAIOutput is the assistant's reply.
type AskAIOutput struct {
	Provider string
	Answer   string
}

// AIUsecase proxies prompts to the configured AI provider, carrying a
// bounded per-caller conversation history.
type AIUsecase interface {
	// Ask sends the prompt with the caller's recent history and records
	// both the prompt and the reply.
	Ask(ctx context.Context, input *AskAIInput) (*AskAIOutput, error)

	// Reset clears the caller's conversation history.
	Reset(ctx context.Context, callerKey string)
}
