package importing

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEntity       = errors.New("unknown import entity")
	ErrSessionNotFound     = errors.New("import session not found")
	ErrInvalidTransition   = errors.New("invalid import session transition")
	ErrSessionBusy         = errors.New("import session is already being imported")
	ErrInvalidImportSource = errors.New("invalid import source")
	ErrLoadReferences      = errors.New("failed to load reference collections")
)

// ParseError reports a file that could not be decoded as a spreadsheet. It
// aborts the whole session before any row is shown.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("cannot read spreadsheet: %v", e.Err)
	}
	return fmt.Sprintf("cannot read spreadsheet %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReferenceError is the row-level message for a free-text reference that
// matched no entity in its collection.
type ReferenceError struct {
	Label string
	Value string
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Label, e.Value)
}

// PersistenceError is a create failure for an otherwise valid row.
type PersistenceError struct {
	RowIndex int
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("row %d: %v", e.RowIndex, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
