package service

import (
	"context"
	"errors"
)

// Chat roles understood by the AI providers.
const (
	AIRoleSystem    = "system"
	AIRoleUser      = "user"
	AIRoleAssistant = "assistant"
)

// Provider-level failures that callers translate into user-facing responses.
var (
	// ErrAIUnauthorized means the upstream rejected our API key.
	ErrAIUnauthorized = errors.New("ai provider rejected credentials")
	// ErrAIRateLimited means the upstream throttled the request.
	ErrAIRateLimited = errors.New("ai provider rate limited")
)

// AIMessage is one turn of an AI conversation.
type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AIHistory keeps a bounded conversation history per caller. Old turns are
// evicted first once a caller's history outgrows the configured limit.
type AIHistory interface {
	// Append records turns for a caller.
	Append(callerKey string, messages ...AIMessage)

	// Get returns a copy of the caller's retained history, oldest first.
	Get(callerKey string) []AIMessage

	// Clear discards a caller's history.
	Clear(callerKey string)
}

// AIProvider defines the interface for a hosted chat-completion backend.
type AIProvider interface {
	// Name identifies the provider ("gemini", "openai").
	Name() string

	// Ask sends the conversation and returns the assistant's reply.
	Ask(ctx context.Context, messages []AIMessage) (string, error)
}
