package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInput is returned when a decision input is absent
	ErrMissingInput = errors.New("missing input")
	// ErrNegativeQuantity is returned when a decision quantity is below zero
	ErrNegativeQuantity = errors.New("invalid quantity")
)

// ColumnRole names the column a resolver looks for
type ColumnRole string

const (
	ItemCodeRole   ColumnRole = "item code"
	AvgConsumeRole ColumnRole = "avg consume"
)

// ColumnResolutionError means the input header has no column for a role
type ColumnResolutionError struct {
	Role    ColumnRole
	Columns []string
}

func (e *ColumnResolutionError) Error() string {
	return fmt.Sprintf("no %s column found among [%s]", e.Role, strings.Join(e.Columns, ", "))
}

// ItemNotFoundError means a decision was requested for an unknown item
type ItemNotFoundError struct {
	ItemCode ItemCode
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item code '%s' not found in reference table", e.ItemCode)
}

// ConnectionError wraps a failure to reach the persistence store
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s store failed: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// InputFileError is returned when the input directory does not hold
// exactly one spreadsheet candidate
type InputFileError struct {
	Dir        string
	Extensions []string
	Matches    []string
}

func (e *InputFileError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no input file with extension %s found in %s",
			strings.Join(e.Extensions, "/"), e.Dir)
	}
	return fmt.Sprintf("expected exactly one input file in %s, found %d: %s",
		e.Dir, len(e.Matches), strings.Join(e.Matches, ", "))
}
