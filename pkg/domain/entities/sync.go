package entities

import (
	"fmt"
	"strings"
)

// SyncStrategy represents how normalized records reconcile with the stored table
type SyncStrategy int

const (
	// Replace discards the stored content and writes the new set
	Replace SyncStrategy = iota
	// Append inserts the new set without collision checks
	Append
	// Upsert overwrites existing keys and inserts new ones
	Upsert
)

// String method for SyncStrategy enum
func (s SyncStrategy) String() string {
	switch s {
	case Replace:
		return "replace"
	case Append:
		return "append"
	case Upsert:
		return "upsert"
	default:
		return "unknown"
	}
}

// ParseSyncStrategy parses a strategy selector
func ParseSyncStrategy(s string) (SyncStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "replace":
		return Replace, nil
	case "append":
		return Append, nil
	case "upsert":
		return Upsert, nil
	default:
		return Replace, fmt.Errorf("invalid sync strategy: %s (expected: replace, append, or upsert)", s)
	}
}

// RawSheet is a loosely-structured table read from an input file.
// Columns is the header row; each row may be shorter or longer than it.
type RawSheet struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the trimmed value at row/col and whether it is present
func (s *RawSheet) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return "", false
	}
	value := strings.TrimSpace(s.Rows[row][col])
	if value == "" {
		return "", false
	}
	return value, true
}
