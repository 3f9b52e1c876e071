// internal/logging/logging.go
// Package logging writes client events and wire traffic to stdout and a log file.
package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout plus the given log file,
// creating parent directories as needed. An empty path logs to stdout only.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	writers := []io.Writer{os.Stdout}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and restores the default logger output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent records a free-form client event.
func LogEvent(format string, args ...any) {
	log.Println(fmt.Sprintf(format, args...))
}

// LogRequest records one unit of wire traffic. Direction is a label such as
// "CLIENT->MCP" or "LLM->CLIENT"; server identifies the tool server or model
// host the payload crossed to or from.
func LogRequest(direction, server, model, tool string, payload any) {
	log.Println(buildRequestMessage(direction, server, model, tool, payload))
}

func buildRequestMessage(direction, server, model, tool string, payload any) string {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	serverValue := strings.TrimSpace(server)
	if serverValue == "" {
		serverValue = "unknown"
	}

	parts := []string{fmt.Sprintf("[%s]", dir), fmt.Sprintf("server=%s", serverValue)}
	if model = strings.TrimSpace(model); model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", model))
	}
	if tool = strings.TrimSpace(tool); tool != "" {
		parts = append(parts, fmt.Sprintf("tool=%s", tool))
	}
	parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	return strings.Join(parts, " ")
}

// formatPayload renders a payload on one log line. Raw wire frames arrive as
// []byte with a trailing newline, which is trimmed so the line stays intact.
func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(bytes.TrimSpace(v)) == 0 {
			return "[]"
		}
		return string(bytes.TrimSpace(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
