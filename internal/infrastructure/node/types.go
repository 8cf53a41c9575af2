package node

import "fmt"

const (
	jsonrpcVersion        = "2.0"
	submitExtrinsicMethod = "author_submitExtrinsic"
)

type rpcRequest struct {
	JsonRpc string        `json:"jsonrpc"`
	Id      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *rpcError) String() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

type rpcResponse struct {
	JsonRpc string    `json:"jsonrpc"`
	Id      string    `json:"id"`
	Result  string    `json:"result"`
	Error   *rpcError `json:"error"`
}
