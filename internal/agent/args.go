// internal/agent/args.go
package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
)

// parseToolArguments parses a call's serialized argument payload into a map.
// Models occasionally double-encode the object as a JSON string, so that
// shape is unwrapped before giving up.
func parseToolArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &args); err == nil {
		return args, nil
	}
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return args, nil
		}
		if err := json.Unmarshal([]byte(inner), &args); err != nil {
			return nil, fmt.Errorf("parse tool arguments string: %w", err)
		}
		return args, nil
	}
	return nil, fmt.Errorf("parse tool arguments: not a JSON object: %s", truncateForLog(trimmed, 80))
}

// validateArguments checks the parsed arguments against the tool's
// advertised input schema. Tools without a schema accept anything.
func validateArguments(def llm.ToolDefinition, args map[string]any) error {
	if len(def.InputSchema) == 0 {
		return nil
	}
	schemaLoader := gojsonschema.NewGoLoader(def.InputSchema)
	argBytes, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshal arguments for validation: %w", err)
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(argBytes))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("arguments failed validation: %s", strings.Join(details, "; "))
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(data)
}

func truncateForLog(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	return string(runes[:max]) + "…"
}
