// internal/llm/groq.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Jenish-Vue/MCP-Groq/internal/appconfig"
	"github.com/Jenish-Vue/MCP-Groq/internal/logging"
)

// Groq implements CompletionClient against the Groq OpenAI-compatible
// chat-completion endpoint.
type Groq struct {
	api     *openai.Client
	model   string
	server  string
	timeout time.Duration
}

// NewGroq constructs a Groq client from the application config. The API key
// is passed through as-is; a missing key surfaces as an authentication
// failure from the remote API on first use.
func NewGroq(cfg *appconfig.Config, apiKey string) *Groq {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = cfg.CompletionBaseURL()
	return &Groq{
		api:     openai.NewClientWithConfig(clientCfg),
		model:   cfg.ModelName(),
		server:  cfg.CompletionBaseURL(),
		timeout: cfg.RequestTimeout(),
	}
}

// Model returns the configured model identifier.
func (g *Groq) Model() string { return g.model }

// Complete sends one chat-completion request. Tool schemas are attached only
// when the caller provides them, matching the two call shapes the loop uses.
func (g *Groq) Complete(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	if len(tools) > 0 {
		req.Tools = formatToolsForPayload(tools)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	logging.LogRequest("CLIENT->LLM", g.server, g.model, "", map[string]any{
		"messages": len(req.Messages),
		"tools":    toolNames(tools),
	})

	resp, err := g.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, fmt.Errorf("groq completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, errors.New("groq completion: no choices in response")
	}

	msg := resp.Choices[0].Message
	out := Completion{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	logging.LogRequest("LLM->CLIENT", g.server, g.model, "", map[string]any{
		"content_chars": len(out.Content),
		"tool_calls":    len(out.ToolCalls),
	})
	return out, nil
}

// formatToolsForPayload converts tool definitions into the wire format the
// completion API expects.
func formatToolsForPayload(tools []ToolDefinition) []openai.Tool {
	formatted := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		fn := &openai.FunctionDefinition{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if tool.InputSchema != nil {
			fn.Parameters = tool.InputSchema
		}
		formatted = append(formatted, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: fn,
		})
	}
	return formatted
}

func toolNames(tools []ToolDefinition) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}
