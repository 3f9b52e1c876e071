// internal/agent/registry_test.go
package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
)

// fakeServer is an in-memory ToolServer for loop and registry tests.
type fakeServer struct {
	path     string
	tools    []llm.ToolDefinition
	listErr  error
	callFn   func(name string, args map[string]any) (string, error)
	calls    []string
	closed   bool
	closeErr error
}

func (f *fakeServer) Path() string                { return f.path }
func (f *fakeServer) Tools() []llm.ToolDefinition { return f.tools }

func (f *fakeServer) ListTools(ctx context.Context) ([]llm.ToolDefinition, error) {
	return f.tools, f.listErr
}

func (f *fakeServer) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	f.calls = append(f.calls, name)
	if f.callFn != nil {
		return f.callFn(name, args)
	}
	return "", nil
}

func (f *fakeServer) Close() error {
	f.closed = true
	return f.closeErr
}

func toolDef(name string) llm.ToolDefinition {
	return llm.ToolDefinition{Name: name, Description: fmt.Sprintf("%s tool", name)}
}

// TestRegistryShadowing verifies the last-connected server wins when two
// servers advertise the same tool name.
func TestRegistryShadowing(t *testing.T) {
	first := &fakeServer{path: "servers/a.py", tools: []llm.ToolDefinition{toolDef("add"), toolDef("subtract")}}
	second := &fakeServer{path: "servers/b.py", tools: []llm.ToolDefinition{toolDef("add")}}

	reg, err := BuildRegistry(context.Background(), []ToolServer{first, second})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	owner, err := reg.Resolve("add")
	if err != nil {
		t.Fatalf("Resolve(add): %v", err)
	}
	if owner.Path() != "servers/b.py" {
		t.Fatalf("expected add owned by later server, got %s", owner.Path())
	}

	owner, err = reg.Resolve("subtract")
	if err != nil {
		t.Fatalf("Resolve(subtract): %v", err)
	}
	if owner.Path() != "servers/a.py" {
		t.Fatalf("expected subtract owned by first server, got %s", owner.Path())
	}

	// The schema list is the concatenation of every server's list, so the
	// duplicate name appears twice.
	if len(reg.Definitions()) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(reg.Definitions()))
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	srv := &fakeServer{path: "servers/a.py", tools: []llm.ToolDefinition{toolDef("add")}}
	reg, err := BuildRegistry(context.Background(), []ToolServer{srv})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if _, err := reg.Resolve("ghost"); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestRegistryListFailure(t *testing.T) {
	broken := &fakeServer{path: "servers/a.py", listErr: errors.New("pipe closed")}
	if _, err := BuildRegistry(context.Background(), []ToolServer{broken}); err == nil {
		t.Fatal("expected error when a server cannot list tools")
	}
}
