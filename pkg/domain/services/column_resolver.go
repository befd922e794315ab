package services

import (
	"strings"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// ColumnMapping identifies the input columns for each canonical field
type ColumnMapping struct {
	ItemCodeIndex   int
	ItemCodeName    string
	AvgConsumeIndex int
	AvgConsumeName  string
}

// columnRule is a two-tier name match. A primary hit ends the scan; a
// fallback hit is remembered and may be overwritten by a later column.
type columnRule struct {
	role     entities.ColumnRole
	primary  []string
	fallback string
}

var (
	itemCodeRule   = columnRule{role: entities.ItemCodeRole, primary: []string{"item", "code"}, fallback: "item"}
	avgConsumeRule = columnRule{role: entities.AvgConsumeRole, primary: []string{"avg", "consume"}, fallback: "consume"}
)

// ResolveColumns finds the item code and avg consume columns in a header
func ResolveColumns(columns []string) (*ColumnMapping, error) {
	itemIndex := itemCodeRule.match(columns)
	if itemIndex < 0 {
		return nil, &entities.ColumnResolutionError{Role: entities.ItemCodeRole, Columns: columns}
	}

	avgIndex := avgConsumeRule.match(columns)
	if avgIndex < 0 {
		return nil, &entities.ColumnResolutionError{Role: entities.AvgConsumeRole, Columns: columns}
	}

	return &ColumnMapping{
		ItemCodeIndex:   itemIndex,
		ItemCodeName:    columns[itemIndex],
		AvgConsumeIndex: avgIndex,
		AvgConsumeName:  columns[avgIndex],
	}, nil
}

// match returns the index of the matching column or -1
func (r columnRule) match(columns []string) int {
	found := -1
	for i, col := range columns {
		name := strings.ToLower(strings.TrimSpace(col))
		if containsAll(name, r.primary) {
			return i
		}
		if strings.Contains(name, r.fallback) {
			found = i
		}
	}
	return found
}

func containsAll(s string, parts []string) bool {
	for _, part := range parts {
		if !strings.Contains(s, part) {
			return false
		}
	}
	return true
}
