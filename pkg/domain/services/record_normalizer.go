package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// NormalizationResult holds the canonical records and what was dropped on the way
type NormalizationResult struct {
	Records   []entities.ReferenceRecord
	InputRows int
	Blank     int
	Duplicate int
	Invalid   int
}

// Dropped returns the total number of discarded rows
func (r *NormalizationResult) Dropped() int {
	return r.Blank + r.Duplicate + r.Invalid
}

type projectedRow struct {
	itemCode   string
	avgConsume string
}

// NormalizeRecords projects the mapped columns into reference records.
// Step order matters: duplicates are resolved before numeric coercion, so a
// key whose first occurrence is not numeric is dropped entirely.
func NormalizeRecords(sheet *entities.RawSheet, mapping *ColumnMapping) *NormalizationResult {
	result := &NormalizationResult{
		Records:   make([]entities.ReferenceRecord, 0, len(sheet.Rows)),
		InputRows: len(sheet.Rows),
	}

	// Project and drop rows with an absent field
	projected := make([]projectedRow, 0, len(sheet.Rows))
	for i := range sheet.Rows {
		code, hasCode := sheet.Cell(i, mapping.ItemCodeIndex)
		avg, hasAvg := sheet.Cell(i, mapping.AvgConsumeIndex)
		if !hasCode || !hasAvg {
			result.Blank++
			continue
		}
		projected = append(projected, projectedRow{itemCode: code, avgConsume: avg})
	}

	// Keep the first occurrence of each key
	seen := make(map[string]struct{}, len(projected))
	unique := projected[:0]
	for _, row := range projected {
		if _, exists := seen[row.itemCode]; exists {
			result.Duplicate++
			continue
		}
		seen[row.itemCode] = struct{}{}
		unique = append(unique, row)
	}

	// Coerce and drop non-numeric values
	for _, row := range unique {
		value, err := decimal.NewFromString(row.avgConsume)
		if err != nil {
			result.Invalid++
			continue
		}
		result.Records = append(result.Records, entities.ReferenceRecord{
			ItemCode:   entities.ItemCode(row.itemCode),
			AvgConsume: value,
		})
	}

	return result
}
