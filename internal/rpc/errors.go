package rpc

// JSON-RPC error codes used on the wire.
const (
	CodeMethodNotFound     = -32601
	CodeInvalidParams      = -32602
	CodeInternalError      = -32603
	CodeInvalidCredentials = -32000
)

// Error is the JSON-RPC error object. Handlers return it as a value;
// the dispatcher serializes it into the response envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}
