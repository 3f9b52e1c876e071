// internal/appconfig/appconfig_test.go
package appconfig

import (
	"testing"
	"time"
)

// TestDefaults verifies that a zero-value Config resolves every getter to its
// documented default so the client runs without any configuration file.
func TestDefaults(t *testing.T) {
	var cfg Config

	if cfg.ModelName() != "llama3-8b-8192" {
		t.Fatalf("expected default model, got %q", cfg.ModelName())
	}
	if cfg.CompletionBaseURL() != "https://api.groq.com/openai/v1" {
		t.Fatalf("expected Groq base URL, got %q", cfg.CompletionBaseURL())
	}
	if cfg.RequestTimeout() != 600*time.Second {
		t.Fatalf("expected default request timeout of 600s, got %v", cfg.RequestTimeout())
	}
	if cfg.MCPInitTimeoutDuration() != 10*time.Second {
		t.Fatalf("expected default init timeout of 10s, got %v", cfg.MCPInitTimeoutDuration())
	}
	if cfg.ToolRounds() != 1 {
		t.Fatalf("expected default of 1 tool round, got %d", cfg.ToolRounds())
	}
	if cfg.LogFilePath() != "mcp-groq.log" {
		t.Fatalf("expected default log file, got %q", cfg.LogFilePath())
	}
}

// TestOverrides verifies that explicit values win over the defaults.
func TestOverrides(t *testing.T) {
	cfg := Config{
		Model:          "llama-3.1-70b-versatile",
		BaseURL:        "http://localhost:9999/v1",
		MaxToolRounds:  3,
		MCPInitTimeout: 5,
		TimeoutSeconds: 30,
		LogFile:        "/tmp/client.log",
	}

	if cfg.ModelName() != "llama-3.1-70b-versatile" {
		t.Fatalf("unexpected model: %q", cfg.ModelName())
	}
	if cfg.CompletionBaseURL() != "http://localhost:9999/v1" {
		t.Fatalf("unexpected base URL: %q", cfg.CompletionBaseURL())
	}
	if cfg.ToolRounds() != 3 {
		t.Fatalf("unexpected tool rounds: %d", cfg.ToolRounds())
	}
	if cfg.MCPInitTimeoutDuration() != 5*time.Second {
		t.Fatalf("unexpected init timeout: %v", cfg.MCPInitTimeoutDuration())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("unexpected request timeout: %v", cfg.RequestTimeout())
	}
	if cfg.LogFilePath() != "/tmp/client.log" {
		t.Fatalf("unexpected log file: %q", cfg.LogFilePath())
	}
}

// TestNegativeToolRounds verifies negative round counts fall back to the default.
func TestNegativeToolRounds(t *testing.T) {
	cfg := Config{MaxToolRounds: -2}
	if cfg.ToolRounds() != 1 {
		t.Fatalf("expected fallback to 1 round, got %d", cfg.ToolRounds())
	}
}
