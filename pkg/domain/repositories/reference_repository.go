package repositories

import (
	"context"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// ReferenceRepository provides access to the persisted reference table.
// Each write method commits fully or leaves the table untouched.
type ReferenceRepository interface {
	// EnsureTable creates the table if it does not exist
	EnsureTable(ctx context.Context) error
	// ReadAll returns every row ordered by item code; a missing table reads as empty
	ReadAll(ctx context.Context) ([]entities.ReferenceRecord, error)
	// ReplaceAll discards the current content and writes records in its place
	ReplaceAll(ctx context.Context, records []entities.ReferenceRecord) error
	// AppendAll inserts records without checking for existing keys
	AppendAll(ctx context.Context, records []entities.ReferenceRecord) error
	// UpsertAll overwrites the value of existing keys and inserts new ones
	UpsertAll(ctx context.Context, records []entities.ReferenceRecord) error
}
