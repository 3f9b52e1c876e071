// internal/shell/shell.go

// Package shell implements the interactive query loop: read a line, run it
// through the agent, print the result, repeat until quit or EOF.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// QueryFunc runs one user query and returns the text to display.
type QueryFunc func(ctx context.Context, query string) (string, error)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// Shell drives the interactive loop over an input and output stream.
type Shell struct {
	in  io.Reader
	out io.Writer
	run QueryFunc
}

// New builds a Shell reading queries from in and writing responses to out.
func New(in io.Reader, out io.Writer, run QueryFunc) *Shell {
	return &Shell{in: in, out: out, run: run}
}

// Run loops until the user types "quit" or the input stream ends. A failed
// query is reported and the loop continues; only a read error ends the loop
// abnormally.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, bannerStyle.Render("MCP Client Started!"))
	fmt.Fprintln(s.out, promptStyle.Render("Type your queries or 'quit' to exit."))

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, promptStyle.Render("Query: "))
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.ToLower(query) == "quit" {
			break
		}

		answer, err := s.run(ctx, query)
		if err != nil {
			fmt.Fprintln(s.out, color.RedString("Error: %v", err))
			continue
		}
		fmt.Fprintln(s.out, answerStyle.Render(answer))
	}
	return scanner.Err()
}
