// internal/mcp/tools.go
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
)

// contentBlock is a single content item in a tools/call response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ListTools issues a live tools/list request. Results are never cached here:
// the registry refreshes per query so capability changes are picked up.
func (c *Connection) ListTools(ctx context.Context) ([]llm.ToolDefinition, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.initTimeout)
		defer cancel()
	}

	resp, err := c.rpcCall(ctx, "tools/list", nil, "")
	if err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}
	if len(resp.Result) == 0 {
		return nil, nil
	}

	var payload struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description,omitempty"`
			InputSchema map[string]any `json:"inputSchema,omitempty"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal tools/list result: %w", err)
	}

	defs := make([]llm.ToolDefinition, 0, len(payload.Tools))
	for _, tool := range payload.Tools {
		defs = append(defs, llm.ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return defs, nil
}

// CallTool invokes a tool and returns the joined text of the result's
// content blocks. A result flagged isError surfaces as a Go error.
func (c *Connection) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	params := map[string]any{
		"name":      name,
		"arguments": args,
	}

	resp, err := c.rpcCall(ctx, "tools/call", params, name)
	if err != nil {
		return "", fmt.Errorf("tools/call %s: %w", name, err)
	}
	if len(resp.Result) == 0 {
		return "", nil
	}

	var payload struct {
		Content []contentBlock `json:"content"`
		IsError bool           `json:"isError,omitempty"`
	}
	if err := json.Unmarshal(resp.Result, &payload); err != nil {
		return "", fmt.Errorf("unmarshal tools/call result: %w", err)
	}

	text := extractText(payload.Content)
	if payload.IsError {
		return "", fmt.Errorf("tool %s returned error: %s", name, text)
	}
	return text, nil
}

// extractText joins all text content blocks; non-text blocks are represented
// as inline markers.
func extractText(blocks []contentBlock) string {
	var parts []string
	for _, b := range blocks {
		switch b.Type {
		case "text":
			parts = append(parts, b.Text)
		default:
			parts = append(parts, fmt.Sprintf("[%s]", b.Type))
		}
	}
	return strings.Join(parts, "\n")
}
