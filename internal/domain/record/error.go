package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidData   = errors.New("invalid record data")
	ErrShapeMismatch = errors.New("unexpected response shape")
	ErrDuplicateID   = errors.New("duplicate record id")
)

// DuplicateIDError - в загруженной коллекции встретился повторяющийся id.
type DuplicateIDError struct {
	ID     string
	First  int
	Second int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate record id %q at positions %d and %d", e.ID, e.First, e.Second)
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}
