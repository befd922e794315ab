package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/domain/repositories"
)

// ReferenceRepository provides in-memory reference table storage.
// Rows are kept as a slice so Append can hold repeated keys like a table
// without a unique constraint.
type ReferenceRepository struct {
	mu      sync.RWMutex
	records []entities.ReferenceRecord
}

// NewReferenceRepository creates a new in-memory reference repository
func NewReferenceRepository(expectedRecords int) *ReferenceRepository {
	return &ReferenceRepository{
		records: make([]entities.ReferenceRecord, 0, expectedRecords),
	}
}

// Verify interface compliance
var _ repositories.ReferenceRepository = (*ReferenceRepository)(nil)

// EnsureTable is a no-op for the in-memory store
func (r *ReferenceRepository) EnsureTable(ctx context.Context) error {
	return ctx.Err()
}

// ReadAll returns all rows ordered by item code
func (r *ReferenceRepository) ReadAll(ctx context.Context) ([]entities.ReferenceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.ReferenceRecord, len(r.records))
	copy(out, r.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ItemCode < out[j].ItemCode
	})
	return out, nil
}

// ReplaceAll swaps the stored rows for records
func (r *ReferenceRepository) ReplaceAll(ctx context.Context, records []entities.ReferenceRecord) error {
	return r.write(ctx, func() {
		r.records = append(make([]entities.ReferenceRecord, 0, len(records)), records...)
	})
}

// AppendAll adds records after the existing rows
func (r *ReferenceRepository) AppendAll(ctx context.Context, records []entities.ReferenceRecord) error {
	return r.write(ctx, func() {
		r.records = append(r.records, records...)
	})
}

// UpsertAll removes every row whose key is staged, then inserts the staged rows
func (r *ReferenceRepository) UpsertAll(ctx context.Context, records []entities.ReferenceRecord) error {
	return r.write(ctx, func() {
		staged := make(map[entities.ItemCode]struct{}, len(records))
		for _, record := range records {
			staged[record.ItemCode] = struct{}{}
		}

		kept := make([]entities.ReferenceRecord, 0, len(r.records)+len(records))
		for _, existing := range r.records {
			if _, ok := staged[existing.ItemCode]; !ok {
				kept = append(kept, existing)
			}
		}
		r.records = append(kept, records...)
	})
}

// Count returns the number of stored rows for an item code
func (r *ReferenceRepository) Count(itemCode entities.ItemCode) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, record := range r.records {
		if record.ItemCode == itemCode {
			count++
		}
	}
	return count
}

func (r *ReferenceRepository) write(ctx context.Context, apply func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	apply()
	return nil
}
