package persistence

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when no matching record exists.
type NotFoundError struct {
	Path string
	Kind string
}

func (e *NotFoundError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("no %s deployment recorded in %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("resource not found at path: %s", e.Path)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AlreadyExistsError is returned when a record key is written twice.
type AlreadyExistsError struct {
	Key string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("record %q already exists", e.Key)
}

// WriteError is returned when writing fails.
type WriteError struct {
	Path    string
	Message string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write to %s: %s", e.Path, e.Message)
}

// ReadError is returned when reading fails.
type ReadError struct {
	Path    string
	Message string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read from %s: %s", e.Path, e.Message)
}
