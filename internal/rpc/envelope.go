package rpc

import "encoding/json"

// Request is the inbound JSON-RPC 2.0 envelope. The access_token field is
// an extension: when present it overrides the session's stored token.
type Request struct {
	JSONRPC     string          `json:"jsonrpc"`
	ID          interface{}     `json:"id"`
	Method      string          `json:"method"`
	Params      json.RawMessage `json:"params"`
	AccessToken string          `json:"access_token,omitempty"`
}

// Response is the outbound envelope. ID is always emitted, even when null,
// so clients can correlate (or recognize uncorrelatable) responses.
type Response struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      interface{}            `json:"id"`
	Result  map[string]interface{} `json:"result,omitempty"`
	Error   *Error                 `json:"error,omitempty"`
}

func errorResponse(id interface{}, err *Error) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: err}
}

func resultResponse(id interface{}, result map[string]interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}
