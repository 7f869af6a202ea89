package solr

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/solrkit/internal/wire"
)

// Op names the transport operation for error context.
const (
	OpSelect = "select"
	OpPing   = "ping"
)

// ErrUnavailable marks failures to reach the engine at all.
var ErrUnavailable = errors.New("solr: engine unavailable")

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// StatusError is a non-2xx engine response.
type StatusError struct {
	StatusCode int
	// Message is error.msg from the response body, when present.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("solr: status %d", e.StatusCode)
	}
	return fmt.Sprintf("solr: status %d: %s", e.StatusCode, e.Message)
}

func statusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code}
	if data, err := wire.DecodeBytes(body); err == nil {
		msg, _ := wire.Lookup(data, "error", "msg")
		se.Message, _ = wire.Text(msg)
	}
	return se
}
