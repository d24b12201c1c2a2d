package recordstore

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrConflict       = errors.New("record conflicts with an existing record")
	ErrMissingID      = errors.New("record id is required")
)

// UnknownFieldError reports a query that references a field the store does
// not expose.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// RemoteError is a failure answered by the hosted record API.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("record service responded with status %d", e.Status)
	}
	return e.Message
}
