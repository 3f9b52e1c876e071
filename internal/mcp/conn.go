// internal/mcp/conn.go

// Package mcp implements the tool-server connector: it launches an MCP
// server subprocess, speaks JSON-RPC over its standard streams, and exposes
// the initialize, tools/list, and tools/call operations.
package mcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/Jenish-Vue/MCP-Groq/internal/appconfig"
	"github.com/Jenish-Vue/MCP-Groq/internal/llm"
	"github.com/Jenish-Vue/MCP-Groq/internal/logging"
)

// protocolVersion is the MCP protocol version advertised during initialization.
const protocolVersion = "2024-11-05"

// ErrUnsupportedServerType marks a launch path whose extension maps to no
// known interpreter. No subprocess is spawned in that case.
var ErrUnsupportedServerType = errors.New("unsupported server type")

// Connection owns one tool-server subprocess and its stdio session. A single
// reader goroutine owns stdout and routes responses to pending calls by id.
type Connection struct {
	path        string
	cmd         *exec.Cmd
	stdin       io.WriteCloser
	reader      *bufio.Reader
	writer      *bufio.Writer
	seqMu       sync.Mutex
	seq         int64
	writeMu     sync.Mutex
	pendingMu   sync.Mutex
	pending     map[string]chan rpcResult
	readErr     error
	readDone    chan struct{}
	initTimeout time.Duration
	tools       []llm.ToolDefinition
}

// newConnection builds a Connection over the given streams and starts its
// reader goroutine. The loop exits when the stdout stream closes.
func newConnection(path string, stdin io.WriteCloser, stdout io.Reader, initTimeout time.Duration) *Connection {
	conn := &Connection{
		path:        path,
		stdin:       stdin,
		reader:      bufio.NewReader(stdout),
		writer:      bufio.NewWriter(stdin),
		pending:     make(map[string]chan rpcResult),
		readDone:    make(chan struct{}),
		initTimeout: initTimeout,
	}
	go conn.readLoop()
	return conn
}

// interpreterFor maps a server script path to the command that runs it.
func interpreterFor(path string) (string, error) {
	switch filepath.Ext(path) {
	case ".py":
		return "python", nil
	case ".js":
		return "node", nil
	}
	return "", fmt.Errorf("%w: %q must be a .py or .js file", ErrUnsupportedServerType, path)
}

// Connect launches the server script with its interpreter, performs the
// initialize handshake, and fetches the server's tool list. The returned
// connection is fully initialized; on any failure the subprocess is torn
// down before Connect returns.
func Connect(ctx context.Context, cfg *appconfig.Config, path string) (*Connection, error) {
	interpreter, err := interpreterFor(path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, interpreter, path)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("tool server stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("tool server stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		logging.LogEvent("Tool server failed to start: path=%s err=%v", path, err)
		return nil, fmt.Errorf("start tool server %q: %w", path, err)
	}

	conn := newConnection(path, stdin, stdout, cfg.MCPInitTimeoutDuration())
	conn.cmd = cmd

	initCtx, cancel := context.WithTimeout(ctx, conn.initTimeout)
	defer cancel()

	if err := conn.initialize(initCtx); err != nil {
		logging.LogEvent("Tool server initialization failed: path=%s err=%v", path, err)
		_ = conn.Close()
		return nil, err
	}
	logging.LogEvent("Tool server started: path=%s pid=%d", path, cmd.Process.Pid)

	tools, err := conn.ListTools(initCtx)
	if err != nil {
		logging.LogEvent("Tool server list failed: path=%s err=%v", path, err)
		_ = conn.Close()
		return nil, fmt.Errorf("list tools on %q: %w", path, err)
	}
	conn.tools = tools

	return conn, nil
}

// Path returns the launch path identifying this connection.
func (c *Connection) Path() string { return c.path }

// Tools returns the tool list fetched during the handshake. Queries refresh
// via ListTools instead of relying on this snapshot.
func (c *Connection) Tools() []llm.ToolDefinition { return c.tools }

func (c *Connection) initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "mcp-groq",
			"version": "dev",
		},
	}
	if _, err := c.rpcCall(ctx, "initialize", params, ""); err != nil {
		return fmt.Errorf("initialize %q: %w", c.path, err)
	}
	// The initialized notification completes the handshake.
	if err := c.notify("notifications/initialized", nil); err != nil {
		return fmt.Errorf("initialized notification %q: %w", c.path, err)
	}
	return nil
}

// Close terminates the subprocess: stdin is closed to signal shutdown, and
// the process is killed if it does not exit within the grace period.
func (c *Connection) Close() error {
	var firstErr error

	if c.stdin != nil {
		_ = c.stdin.Close()
	}

	if c.cmd != nil {
		done := make(chan error, 1)
		go func() {
			done <- c.cmd.Wait()
		}()
		select {
		case err := <-done:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		case <-time.After(2 * time.Second):
			_ = c.cmd.Process.Kill()
			if err := <-done; err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
