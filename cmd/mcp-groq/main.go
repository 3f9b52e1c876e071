// cmd/mcp-groq/main.go
package main

import (
	"github.com/Jenish-Vue/MCP-Groq/internal/cli"
)

// executeCmd is indirected so tests can verify wiring without running the CLI.
var executeCmd = cli.Execute

// main starts the mcp-groq client by delegating to the cobra root command.
func main() {
	executeCmd()
}
