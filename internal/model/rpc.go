package model

import "net/http"

// RPCRequest is a JSON-RPC 2.0 request as sent by an MCP client.
type RPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// CallToolParams are the params of a tools/call request.
type CallToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ProbeResponse is a completed response received by the probe client.
type ProbeResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
