// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultModel is the Groq model used when the config omits one.
	DefaultModel = "llama3-8b-8192"
	// DefaultBaseURL is the Groq OpenAI-compatible completion endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultTimeoutSeconds is the default timeout for completion requests.
	DefaultTimeoutSeconds = 600
	// DefaultMCPInitTimeout defines the fallback timeout, in seconds, used while initializing a tool server.
	DefaultMCPInitTimeout = 10
	// DefaultMaxToolRounds defines how many tool rounds a single query may use.
	DefaultMaxToolRounds = 1
	// DefaultLogFile is the request log written alongside the binary.
	DefaultLogFile = "mcp-groq.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Model          string `json:"model,omitempty" mapstructure:"model"`
	BaseURL        string `json:"baseURL,omitempty" mapstructure:"baseURL"`
	MaxToolRounds  int    `json:"maxToolRounds,omitempty" mapstructure:"maxToolRounds"`
	MCPInitTimeout int    `json:"mcpInitTimeout,omitempty" mapstructure:"mcpInitTimeout"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// ModelName returns the configured Groq model, falling back to the default.
func (c Config) ModelName() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return DefaultModel
}

// CompletionBaseURL returns the completion endpoint base URL, applying the Groq default.
func (c Config) CompletionBaseURL() string {
	if u := strings.TrimSpace(c.BaseURL); u != "" {
		return u
	}
	return DefaultBaseURL
}

// RequestTimeout returns the timeout duration for completion requests.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MCPInitTimeoutDuration returns the timeout duration for tool server initialization.
func (c Config) MCPInitTimeoutDuration() time.Duration {
	if c.MCPInitTimeout <= 0 {
		return DefaultMCPInitTimeout * time.Second
	}
	return time.Duration(c.MCPInitTimeout) * time.Second
}

// ToolRounds returns how many tool rounds the completion loop allows per query.
// The default of one round matches the historical single-shot behavior.
func (c Config) ToolRounds() int {
	if c.MaxToolRounds <= 0 {
		return DefaultMaxToolRounds
	}
	return c.MaxToolRounds
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return DefaultLogFile
}
