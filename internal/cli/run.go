// internal/cli/run.go
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jenish-Vue/MCP-Groq/internal/agent"
	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
	"github.com/Jenish-Vue/MCP-Groq/internal/shell"
)

// runClient wires the completion backend, connects the tool servers named on
// the command line, and hands control to the interactive shell.
func runClient(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	// The key is not validated here; a missing or bad key surfaces as an
	// authentication failure from the remote API on the first query.
	client := llm.NewGroq(cfg, os.Getenv("GROQ_API_KEY"))
	ag := agent.New(cfg, client)

	ctx := context.Background()
	if err := ag.ConnectAll(ctx, args); err != nil {
		return err
	}
	defer ag.Close()

	return shell.New(os.Stdin, os.Stdout, ag.ProcessQuery).Run(ctx)
}
