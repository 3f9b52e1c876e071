// internal/shell/shell_test.go
package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunQuitExitsLoop(t *testing.T) {
	var queries []string
	run := func(ctx context.Context, q string) (string, error) {
		queries = append(queries, q)
		return "answer to " + q, nil
	}

	in := strings.NewReader("hello\nQuit\nnever reached\n")
	var out bytes.Buffer
	s := New(in, &out, run)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(queries) != 1 || queries[0] != "hello" {
		t.Fatalf("unexpected queries: %v", queries)
	}
	if !strings.Contains(out.String(), "answer to hello") {
		t.Fatalf("missing answer in output: %q", out.String())
	}
	if !strings.Contains(out.String(), "MCP Client Started!") {
		t.Fatalf("missing banner in output: %q", out.String())
	}
}

func TestRunSkipsBlankLines(t *testing.T) {
	var queries []string
	run := func(ctx context.Context, q string) (string, error) {
		queries = append(queries, q)
		return "ok", nil
	}

	in := strings.NewReader("\n   \nreal query\n")
	var out bytes.Buffer
	s := New(in, &out, run)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(queries) != 1 || queries[0] != "real query" {
		t.Fatalf("unexpected queries: %v", queries)
	}
}

func TestRunContinuesAfterQueryError(t *testing.T) {
	calls := 0
	run := func(ctx context.Context, q string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("backend down")
		}
		return "recovered", nil
	}

	in := strings.NewReader("first\nsecond\nquit\n")
	var out bytes.Buffer
	s := New(in, &out, run)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both queries attempted, got %d", calls)
	}
	if !strings.Contains(out.String(), "backend down") {
		t.Fatalf("missing error report: %q", out.String())
	}
	if !strings.Contains(out.String(), "recovered") {
		t.Fatalf("missing recovered answer: %q", out.String())
	}
}

func TestRunEndsCleanlyOnEOF(t *testing.T) {
	run := func(ctx context.Context, q string) (string, error) { return "ok", nil }

	in := strings.NewReader("only query\n")
	var out bytes.Buffer
	s := New(in, &out, run)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Fatalf("query not processed before EOF: %q", out.String())
	}
}
