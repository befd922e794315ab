package entities

import "sort"

// ReferenceTable is a read-only snapshot of the reference records,
// ordered by item code
type ReferenceTable struct {
	records []ReferenceRecord
	index   map[ItemCode]int
}

// NewReferenceTable builds a snapshot. Records are sorted by item code;
// when a code repeats, lookups resolve to its first row in that order.
func NewReferenceTable(records []ReferenceRecord) *ReferenceTable {
	sorted := make([]ReferenceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ItemCode < sorted[j].ItemCode
	})

	index := make(map[ItemCode]int, len(sorted))
	for i, record := range sorted {
		if _, exists := index[record.ItemCode]; !exists {
			index[record.ItemCode] = i
		}
	}

	return &ReferenceTable{
		records: sorted,
		index:   index,
	}
}

// Lookup returns the record for an item code
func (t *ReferenceTable) Lookup(itemCode ItemCode) (ReferenceRecord, bool) {
	i, exists := t.index[itemCode]
	if !exists {
		return ReferenceRecord{}, false
	}
	return t.records[i], true
}

// Len returns the number of rows, duplicates included
func (t *ReferenceTable) Len() int {
	return len(t.records)
}

// Records returns a copy of all rows in item code order
func (t *ReferenceTable) Records() []ReferenceRecord {
	out := make([]ReferenceRecord, len(t.records))
	copy(out, t.records)
	return out
}

// ItemCodes returns the distinct item codes in order
func (t *ReferenceTable) ItemCodes() []ItemCode {
	codes := make([]ItemCode, 0, len(t.index))
	for i, record := range t.records {
		if t.index[record.ItemCode] == i {
			codes = append(codes, record.ItemCode)
		}
	}
	return codes
}
