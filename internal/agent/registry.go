// internal/agent/registry.go
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
)

// ErrToolNotFound marks a tool name the model requested that no connected
// server advertises.
var ErrToolNotFound = errors.New("tool not found")

// ToolServer is the connection surface the registry and completion loop
// depend on; *mcp.Connection satisfies it.
type ToolServer interface {
	Path() string
	Tools() []llm.ToolDefinition
	ListTools(ctx context.Context) ([]llm.ToolDefinition, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Close() error
}

// Registry maps tool names to their owning server connection. It is rebuilt
// at the start of every query from the live tool lists, so tool sets that
// change between queries are never served from a stale snapshot.
type Registry struct {
	defs    []llm.ToolDefinition
	owners  map[string]ToolServer
	schemas map[string]llm.ToolDefinition
}

// BuildRegistry lists every server's tools in connect order. When two
// servers expose the same tool name, the later-enumerated server wins.
func BuildRegistry(ctx context.Context, servers []ToolServer) (*Registry, error) {
	reg := &Registry{
		owners:  make(map[string]ToolServer),
		schemas: make(map[string]llm.ToolDefinition),
	}
	for _, srv := range servers {
		tools, err := srv.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tools on %s: %w", srv.Path(), err)
		}
		for _, def := range tools {
			reg.defs = append(reg.defs, def)
			reg.owners[def.Name] = srv
			reg.schemas[def.Name] = def
		}
	}
	return reg, nil
}

// Resolve returns the connection owning the named tool.
func (r *Registry) Resolve(name string) (ToolServer, error) {
	if srv, ok := r.owners[name]; ok {
		return srv, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
}

// Schema returns the advertised definition for the named tool.
func (r *Registry) Schema(name string) (llm.ToolDefinition, bool) {
	def, ok := r.schemas[name]
	return def, ok
}

// Definitions returns the concatenated tool schemas in enumeration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	return r.defs
}
