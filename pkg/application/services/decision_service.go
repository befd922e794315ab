package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/domain/repositories"
	domainservices "github.com/vsinha/reorder/pkg/domain/services"
	"github.com/vsinha/reorder/pkg/infrastructure/events"
)

// DecisionService evaluates decisions against a cached snapshot of the
// reference table. The snapshot is loaded on first use and replaced only
// by Reload.
type DecisionService struct {
	repo   repositories.ReferenceRepository
	engine *domainservices.DecisionEngine

	mu    sync.RWMutex
	table *entities.ReferenceTable
}

// NewDecisionService creates a decision service reading from repo
func NewDecisionService(repo repositories.ReferenceRepository) *DecisionService {
	return &DecisionService{
		repo:   repo,
		engine: domainservices.NewDecisionEngine(),
	}
}

// Table returns the cached snapshot, loading it if needed
func (s *DecisionService) Table(ctx context.Context) (*entities.ReferenceTable, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil {
		return s.table, nil
	}
	return s.loadLocked(ctx)
}

// Reload drops the cached snapshot and fetches a fresh one
func (s *DecisionService) Reload(ctx context.Context) (*entities.ReferenceTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
	return s.loadLocked(ctx)
}

// Invalidate drops the cached snapshot; the next call reloads it
func (s *DecisionService) Invalidate() {
	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

// Decide evaluates request against the cached table
func (s *DecisionService) Decide(ctx context.Context, request entities.DecisionRequest) (entities.DecisionContext, error) {
	// Input validation does not need the table
	if err := request.Validate(); err != nil {
		return entities.DecisionContext{}, err
	}

	table, err := s.Table(ctx)
	if err != nil {
		return entities.DecisionContext{}, err
	}
	return s.engine.Decide(table, request)
}

// ItemCodes lists the selectable item codes
func (s *DecisionService) ItemCodes(ctx context.Context) ([]entities.ItemCode, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return table.ItemCodes(), nil
}

// Verify interface compliance
var _ events.EventHandler = (*DecisionService)(nil)

// CanHandle reports interest in completed syncs
func (s *DecisionService) CanHandle(eventType string) bool {
	return eventType == events.TableSyncedEvent
}

// Handle drops the snapshot after a sync so the next decision sees the
// new table
func (s *DecisionService) Handle(event events.Event) error {
	s.Invalidate()
	return nil
}

func (s *DecisionService) loadLocked(ctx context.Context) (*entities.ReferenceTable, error) {
	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference table: %w", err)
	}
	s.table = entities.NewReferenceTable(records)
	return s.table, nil
}
