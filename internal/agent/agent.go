// internal/agent/agent.go

// Package agent owns the client lifecycle: connecting tool servers,
// rebuilding the tool registry per query, and driving the completion loop
// that dispatches the model's tool-call requests.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/k0kubun/pp"

	"github.com/Jenish-Vue/MCP-Groq/internal/appconfig"
	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
	"github.com/Jenish-Vue/MCP-Groq/internal/logging"
	"github.com/Jenish-Vue/MCP-Groq/internal/mcp"
)

// connectServer is indirected so tests can substitute fake servers.
var connectServer = func(ctx context.Context, cfg *appconfig.Config, path string) (ToolServer, error) {
	return mcp.Connect(ctx, cfg, path)
}

// Agent holds the connected tool servers and the completion backend for the
// lifetime of the process run.
type Agent struct {
	cfg     *appconfig.Config
	client  llm.CompletionClient
	servers []ToolServer
}

// New constructs an Agent. Servers are attached via ConnectAll.
func New(cfg *appconfig.Config, client llm.CompletionClient) *Agent {
	return &Agent{cfg: cfg, client: client}
}

// ConnectAll launches and initializes each server script in order. A server
// that fails to connect is reported and skipped rather than aborting the
// batch; startup fails only when no server connects at all. Connect order is
// preserved, which fixes the registry's shadowing order.
func (a *Agent) ConnectAll(ctx context.Context, paths []string) error {
	for _, path := range paths {
		conn, err := connectServer(ctx, a.cfg, path)
		if err != nil {
			color.Red("Failed to connect to %s: %v", path, err)
			logging.LogEvent("Tool server connect failed: path=%s err=%v", path, err)
			continue
		}
		a.servers = append(a.servers, conn)

		names := make([]string, 0, len(conn.Tools()))
		for _, tool := range conn.Tools() {
			names = append(names, tool.Name)
		}
		color.Green("Connected to %s with tools: %v", path, names)
	}
	if len(a.servers) == 0 {
		return errors.New("no tool servers connected")
	}
	return nil
}

// Close shuts down every connection. A failing close does not stop the
// drain; the first error is reported after all connections are released.
func (a *Agent) Close() error {
	var firstErr error
	for _, srv := range a.servers {
		if err := srv.Close(); err != nil {
			logging.LogEvent("Tool server close failed: path=%s err=%v", srv.Path(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.servers = nil
	return firstErr
}

// ProcessQuery runs one full completion turn: registry rebuild, first
// completion with tool schemas, tool dispatch, and bounded follow-up rounds.
func (a *Agent) ProcessQuery(ctx context.Context, query string) (string, error) {
	queryID := uuid.NewString()
	logging.LogEvent("Query started: id=%s chars=%d", queryID, len(query))

	reg, err := BuildRegistry(ctx, a.servers)
	if err != nil {
		return "", err
	}
	if a.cfg.Debug {
		pp.Println(reg.Definitions())
	}

	messages := []llm.ChatMessage{{Role: "user", Content: query}}
	comp, err := a.client.Complete(ctx, messages, reg.Definitions())
	if err != nil {
		return "", err
	}

	var out []string
	maxRounds := a.cfg.ToolRounds()
	for round := 0; ; round++ {
		if strings.TrimSpace(comp.Content) != "" {
			out = append(out, comp.Content)
		}
		if len(comp.ToolCalls) == 0 {
			break
		}
		if round >= maxRounds {
			// The round budget is spent; any further tool requests are ignored
			// and whatever text arrived becomes the final answer.
			logging.LogEvent("Query tool limit reached: id=%s ignored=%d rounds=%d", queryID, len(comp.ToolCalls), maxRounds)
			break
		}

		messages = a.dispatchToolCalls(ctx, queryID, reg, comp.ToolCalls, messages, &out)

		// Schemas are re-attached only while rounds remain, so the final
		// allowed round ends with one schema-less follow-up request.
		var schemas []llm.ToolDefinition
		if round+1 < maxRounds {
			schemas = reg.Definitions()
		}
		comp, err = a.client.Complete(ctx, messages, schemas)
		if err != nil {
			return "", err
		}
	}

	logging.LogEvent("Query finished: id=%s", queryID)
	return strings.Join(out, "\n"), nil
}

// dispatchToolCalls invokes each requested tool in the order the model
// emitted them. Unresolvable names, malformed arguments, schema-invalid
// arguments, and failed invocations all degrade to per-call diagnostics; the
// rest of the batch still runs.
func (a *Agent) dispatchToolCalls(ctx context.Context, queryID string, reg *Registry, calls []llm.ToolCall, messages []llm.ChatMessage, out *[]string) []llm.ChatMessage {
	for _, call := range calls {
		srv, err := reg.Resolve(call.Name)
		if err != nil {
			*out = append(*out, fmt.Sprintf("Tool %s not found on any connected server.", call.Name))
			logging.LogEvent("Tool skipped: id=%s tool=%s reason=%v", queryID, call.Name, err)
			continue
		}

		args, err := parseToolArguments(call.Arguments)
		if err != nil {
			note := fmt.Sprintf("[Tool %s failed: malformed arguments: %v]", call.Name, err)
			*out = append(*out, note)
			messages = append(messages, llm.ChatMessage{Role: "user", Content: note})
			logging.LogEvent("Tool failed: id=%s tool=%s reason=%v", queryID, call.Name, err)
			continue
		}
		if def, ok := reg.Schema(call.Name); ok {
			if err := validateArguments(def, args); err != nil {
				note := fmt.Sprintf("[Tool %s failed: %v]", call.Name, err)
				*out = append(*out, note)
				messages = append(messages, llm.ChatMessage{Role: "user", Content: note})
				logging.LogEvent("Tool failed: id=%s tool=%s reason=%v", queryID, call.Name, err)
				continue
			}
		}

		logging.LogEvent("Tool requested: id=%s tool=%s server=%s args=%s", queryID, call.Name, srv.Path(), formatArgs(args))
		result, err := srv.CallTool(ctx, call.Name, args)
		if err != nil {
			note := fmt.Sprintf("[Tool %s failed: %v]", call.Name, err)
			*out = append(*out, note)
			messages = append(messages, llm.ChatMessage{Role: "user", Content: note})
			logging.LogEvent("Tool failed: id=%s tool=%s reason=%v", queryID, call.Name, err)
			continue
		}

		*out = append(*out, fmt.Sprintf("[Called %s on %s with args %s]", call.Name, srv.Path(), formatArgs(args)))
		logging.LogEvent("Tool executed: id=%s tool=%s server=%s output=%s", queryID, call.Name, srv.Path(), truncateForLog(result, 160))
		messages = append(messages, llm.ChatMessage{Role: "user", Content: result})
	}
	return messages
}
