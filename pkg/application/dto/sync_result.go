package dto

import (
	"time"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// SyncResult summarizes one synchronization run
type SyncResult struct {
	Strategy   entities.SyncStrategy
	Table      string
	SourceFile string
	// ItemCodeColumn and AvgConsumeColumn are the input columns that were used
	ItemCodeColumn   string
	AvgConsumeColumn string
	InputRows        int
	Processed        int
	BlankRows        int
	DuplicateRows    int
	InvalidRows      int
	DryRun           bool
	// Sample holds the first few normalized records
	Sample   []entities.ReferenceRecord
	Duration time.Duration
}

// Dropped returns the number of input rows that did not become records
func (r *SyncResult) Dropped() int {
	return r.BlankRows + r.DuplicateRows + r.InvalidRows
}
