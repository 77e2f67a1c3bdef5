package rpc

import (
	"errors"
	"fmt"
)

// RPCError is returned when an RPC call fails.
type RPCError struct {
	Operation string
	Message   string
	Code      int
	Err       error
}

func (e *RPCError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("RPC %s failed (code %d): %s", e.Operation, e.Code, e.Message)
	}
	return fmt.Sprintf("RPC %s failed: %s", e.Operation, e.Message)
}

func (e *RPCError) Unwrap() error { return e.Err }

// NotFoundError is returned when an object does not exist or was deleted.
type NotFoundError struct {
	Resource string
	Reason   string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("resource not found: %s (%s)", e.Resource, e.Reason)
	}
	return fmt.Sprintf("resource not found: %s", e.Resource)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConnectionError is returned when the endpoint cannot be reached.
type ConnectionError struct {
	Endpoint string
	Message  string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %s", e.Endpoint, e.Message)
}
