package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemCode represents a unique item identifier in the reference table
type ItemCode string

// ReferenceRecord is one canonical (item_code, avg_consume) pair
type ReferenceRecord struct {
	ItemCode ItemCode
	// AvgConsume is signed as loaded; decisions use its absolute value.
	AvgConsume decimal.Decimal
}

// NewReferenceRecord creates a validated ReferenceRecord
func NewReferenceRecord(itemCode ItemCode, avgConsume decimal.Decimal) (*ReferenceRecord, error) {
	if string(itemCode) == "" {
		return nil, fmt.Errorf("item code cannot be empty")
	}

	return &ReferenceRecord{
		ItemCode:   itemCode,
		AvgConsume: avgConsume,
	}, nil
}

// String renders the record as "code=value"
func (r ReferenceRecord) String() string {
	return fmt.Sprintf("%s=%s", r.ItemCode, r.AvgConsume.String())
}
