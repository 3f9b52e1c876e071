// internal/llm/llm.go

// Package llm defines the chat types shared across the client and the
// completion backend that turns a conversation plus tool schemas into an
// assistant response. The concrete backend is the Groq OpenAI-compatible
// API; the CompletionClient interface keeps the completion loop testable.
package llm

import "context"

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ToolCall is one tool invocation requested by the model. Arguments is the
// raw serialized argument object exactly as the model emitted it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition describes a tool a server advertises: its invocation name,
// a description for the model, and the JSON Schema of accepted arguments.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

// Completion is one model response: optional assistant text plus zero or
// more tool-call requests.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// CompletionClient is the interface the completion loop depends on.
type CompletionClient interface {
	// Complete sends the conversation and optional tool schemas and returns
	// the assistant's response. A nil tools slice sends no schemas at all.
	Complete(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (Completion, error)
}
