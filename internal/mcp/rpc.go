// internal/mcp/rpc.go
package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Jenish-Vue/MCP-Groq/internal/logging"
)

// Messages are newline-delimited JSON-RPC 2.0 on the subprocess's stdio.

type jsonrpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *jsonrpcError) Error() string {
	return e.Message
}

// rpcResult carries one routed response plus its raw line for logging.
type rpcResult struct {
	resp jsonrpcResponse
	raw  []byte
}

func normalizeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '"' {
		if unquoted, err := strconv.Unquote(trimmed); err == nil {
			return unquoted
		}
		trimmed = strings.Trim(trimmed, "\"")
	}
	return trimmed
}

func (c *Connection) nextID() int64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	c.seq++
	return c.seq
}

func (c *Connection) writeFrame(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.writer.Write(data); err != nil {
		return err
	}
	if err := c.writer.WriteByte('\n'); err != nil {
		return err
	}
	return c.writer.Flush()
}

// readLoop is the connection's single stdout reader. It runs for the life of
// the subprocess and routes each response to the pending call that owns its
// id, so a call that gives up on a slow response never leaves a competing
// reader behind: the late reply is simply dropped here.
func (c *Connection) readLoop() {
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			c.failPending(err)
			return
		}
		var resp jsonrpcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			logging.LogEvent("Skipping non-JSON line from tool server %s", c.path)
			continue
		}

		id := normalizeID(resp.ID)
		if id == "" {
			// Server-initiated notification.
			logging.LogEvent("Skipping notification from tool server %s", c.path)
			continue
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[id]
		if ok {
			delete(c.pending, id)
		}
		c.pendingMu.Unlock()
		if !ok {
			// Reply to a call that already timed out.
			logging.LogEvent("Dropping unmatched message from tool server %s: id=%q", c.path, id)
			continue
		}
		ch <- rpcResult{resp: resp, raw: line}
	}
}

// failPending records the terminal read error and wakes every in-flight call.
func (c *Connection) failPending(err error) {
	c.pendingMu.Lock()
	c.readErr = err
	c.pending = nil
	c.pendingMu.Unlock()
	close(c.readDone)
}

// rpcCall issues one request and waits for the response with the matching id.
// The read side is owned by readLoop, so concurrent calls and abandoned
// deadlines cannot corrupt the stream.
func (c *Connection) rpcCall(ctx context.Context, method string, params any, tool string) (jsonrpcResponse, error) {
	id := c.nextID()
	want := strconv.FormatInt(id, 10)
	ch := make(chan rpcResult, 1)

	c.pendingMu.Lock()
	if c.readErr != nil {
		err := c.readErr
		c.pendingMu.Unlock()
		return jsonrpcResponse{}, err
	}
	c.pending[want] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, want)
		c.pendingMu.Unlock()
	}()

	payload := jsonrpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	data, err := json.Marshal(payload)
	if err != nil {
		return jsonrpcResponse{}, err
	}
	logging.LogRequest("CLIENT->MCP", c.path, "", tool, data)

	if err := c.writeFrame(data); err != nil {
		return jsonrpcResponse{}, err
	}

	select {
	case <-ctx.Done():
		return jsonrpcResponse{}, ctx.Err()
	case <-c.readDone:
		c.pendingMu.Lock()
		err := c.readErr
		c.pendingMu.Unlock()
		return jsonrpcResponse{}, err
	case res := <-ch:
		logging.LogRequest("MCP->CLIENT", c.path, "", tool, res.raw)
		if res.resp.Error != nil {
			return jsonrpcResponse{}, res.resp.Error
		}
		return res.resp, nil
	}
}

// notify sends a JSON-RPC notification; no response is expected.
func (c *Connection) notify(method string, params any) error {
	payload := jsonrpcRequest{JSONRPC: "2.0", Method: method, Params: params}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	logging.LogRequest("CLIENT->MCP", c.path, "", "", data)
	return c.writeFrame(data)
}
