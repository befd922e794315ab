package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vsinha/reorder/pkg/application/dto"
	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/domain/repositories"
	domainservices "github.com/vsinha/reorder/pkg/domain/services"
	"github.com/vsinha/reorder/pkg/infrastructure/events"
	"github.com/vsinha/reorder/pkg/infrastructure/logging"
)

// sampleSize is how many normalized records a result carries for display
const sampleSize = 5

// SheetLoader reads an input file into a raw sheet
type SheetLoader interface {
	Load(filename string) (*entities.RawSheet, error)
}

// SyncRequest selects the input file and strategy for one run
type SyncRequest struct {
	Strategy   entities.SyncStrategy
	SourceFile string
	// DryRun stops after normalization without touching the table
	DryRun bool
}

// SyncService loads a spreadsheet, normalizes it and reconciles the
// reference table with the chosen strategy
type SyncService struct {
	repo   repositories.ReferenceRepository
	loader SheetLoader
	table  string
	logger *log.Logger
	events events.EventStore
}

// NewSyncService creates a sync service writing through repo. table is
// only used for reporting.
func NewSyncService(repo repositories.ReferenceRepository, loader SheetLoader, table string, logger *log.Logger) *SyncService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SyncService{
		repo:   repo,
		loader: loader,
		table:  table,
		logger: logger,
	}
}

// WithEvents publishes the outcome of every write to store
func (s *SyncService) WithEvents(store events.EventStore) *SyncService {
	s.events = store
	return s
}

// Run executes one synchronization. Input and column errors abort before
// the table is touched; a failed write leaves the table as it was.
func (s *SyncService) Run(ctx context.Context, req SyncRequest) (*dto.SyncResult, error) {
	startTime := time.Now()
	s.logger.Printf("sync %s into %s from %s", req.Strategy, s.table, req.SourceFile)

	sheet, err := s.loader.Load(req.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	mapping, err := domainservices.ResolveColumns(sheet.Columns)
	if err != nil {
		s.logger.Printf("column resolution failed for %s: %v", req.SourceFile, err)
		return nil, fmt.Errorf("%s: %w", req.SourceFile, err)
	}
	s.logger.Printf("using columns %q -> item_code, %q -> avg_consume", mapping.ItemCodeName, mapping.AvgConsumeName)

	normalized := domainservices.NormalizeRecords(sheet, mapping)
	s.logger.Printf("normalized %d of %d rows (blank=%d duplicate=%d invalid=%d)",
		len(normalized.Records), normalized.InputRows, normalized.Blank, normalized.Duplicate, normalized.Invalid)

	result := &dto.SyncResult{
		Strategy:         req.Strategy,
		Table:            s.table,
		SourceFile:       req.SourceFile,
		ItemCodeColumn:   mapping.ItemCodeName,
		AvgConsumeColumn: mapping.AvgConsumeName,
		InputRows:        normalized.InputRows,
		Processed:        len(normalized.Records),
		BlankRows:        normalized.Blank,
		DuplicateRows:    normalized.Duplicate,
		InvalidRows:      normalized.Invalid,
		DryRun:           req.DryRun,
		Sample:           sample(normalized.Records),
	}

	if !req.DryRun {
		if err := s.Apply(ctx, req.Strategy, normalized.Records); err != nil {
			s.logger.Printf("sync %s into %s failed: %v", req.Strategy, s.table, err)
			s.publish(events.TableSyncFailedEvent, events.TableSyncFailed{
				Table:    s.table,
				Strategy: req.Strategy.String(),
				Reason:   err.Error(),
			})
			return nil, err
		}
		s.publish(events.TableSyncedEvent, events.TableSynced{
			Table:     s.table,
			Strategy:  req.Strategy.String(),
			Processed: result.Processed,
		})
	}

	result.Duration = time.Since(startTime)
	s.logger.Printf("sync %s into %s finished: %d records in %v", req.Strategy, s.table, result.Processed, result.Duration)
	return result, nil
}

// Apply writes already-normalized records with strategy
func (s *SyncService) Apply(ctx context.Context, strategy entities.SyncStrategy, records []entities.ReferenceRecord) error {
	switch strategy {
	case entities.Replace:
		return s.repo.ReplaceAll(ctx, records)
	case entities.Append:
		return s.repo.AppendAll(ctx, records)
	case entities.Upsert:
		return s.repo.UpsertAll(ctx, records)
	default:
		return fmt.Errorf("unsupported sync strategy: %v", strategy)
	}
}

// publish records an event. The write has already been committed or
// rolled back, so handler failures are only logged.
func (s *SyncService) publish(eventType string, data interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(s.table, events.NewEvent(eventType, s.table, data)); err != nil {
		s.logger.Printf("event %s: %v", eventType, err)
	}
}

func sample(records []entities.ReferenceRecord) []entities.ReferenceRecord {
	n := len(records)
	if n > sampleSize {
		n = sampleSize
	}
	out := make([]entities.ReferenceRecord, n)
	copy(out, records[:n])
	return out
}
