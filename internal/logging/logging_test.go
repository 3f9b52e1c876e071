package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "mcp-groq.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("connected to %s", "servers/math.py")
	LogRequest("client->mcp", "servers/math.py", "", "add", []byte(`{"a":2}`))
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "connected to servers/math.py") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[CLIENT->MCP]") {
		t.Fatalf("expected uppercased direction, got: %s", content)
	}
	if !strings.Contains(content, `payload={"a":2}`) {
		t.Fatalf("expected request payload, got: %s", content)
	}
}

func TestBuildRequestMessageDefaults(t *testing.T) {
	msg := buildRequestMessage(" client->llm ", " ", "", "", nil)
	if !strings.Contains(msg, "[CLIENT->LLM]") {
		t.Fatalf("expected trimmed uppercased direction, got: %s", msg)
	}
	if !strings.Contains(msg, "server=unknown") {
		t.Fatalf("expected default server, got: %s", msg)
	}
	if strings.Contains(msg, "model=") || strings.Contains(msg, "tool=") {
		t.Fatalf("expected empty model/tool to be omitted, got: %s", msg)
	}
	if !strings.Contains(msg, "payload=null") {
		t.Fatalf("expected null payload, got: %s", msg)
	}
}

func TestFormatPayloadShapes(t *testing.T) {
	if got := formatPayload(map[string]any{"ok": true}); got != `{"ok":true}` {
		t.Fatalf("unexpected map payload: %s", got)
	}
	if got := formatPayload("  "); got != `""` {
		t.Fatalf("expected quoted empty string, got: %s", got)
	}
	if got := formatPayload([]byte(nil)); got != "[]" {
		t.Fatalf("expected empty byte marker, got: %s", got)
	}
	if got := formatPayload([]byte("{\"id\":1}\n")); got != `{"id":1}` {
		t.Fatalf("expected trailing newline trimmed, got: %q", got)
	}
}
