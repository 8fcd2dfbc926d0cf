// Package kvsqlwire is the TCP wire protocol: length-prefixed JSON
// frames carrying one SQL request or response each.
package kvsqlwire

import "github.com/tuannm99/kvsql/internal/sql/executor"

// ExecuteRequest is a single SQL command request.
type ExecuteRequest struct {
	ID  uint64 `json:"id"`
	SQL string `json:"sql"`
}

// ExecuteResponse is the response for a request ID.
type ExecuteResponse struct {
	ID     uint64           `json:"id"`
	Result *executor.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
