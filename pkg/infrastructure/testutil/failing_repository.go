package testutil

import (
	"context"
	"sync"

	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/domain/repositories"
)

// FailingRepository wraps a reference repository and fails the next write
// on demand without passing it through
type FailingRepository struct {
	repositories.ReferenceRepository

	mu       sync.Mutex
	failNext error
}

var _ repositories.ReferenceRepository = (*FailingRepository)(nil)

// NewFailingRepository wraps repo
func NewFailingRepository(repo repositories.ReferenceRepository) *FailingRepository {
	return &FailingRepository{ReferenceRepository: repo}
}

// FailNextWrite makes the next ReplaceAll, AppendAll or UpsertAll return err
func (r *FailingRepository) FailNextWrite(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *FailingRepository) ReplaceAll(ctx context.Context, records []entities.ReferenceRecord) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	return r.ReferenceRepository.ReplaceAll(ctx, records)
}

func (r *FailingRepository) AppendAll(ctx context.Context, records []entities.ReferenceRecord) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	return r.ReferenceRepository.AppendAll(ctx, records)
}

func (r *FailingRepository) UpsertAll(ctx context.Context, records []entities.ReferenceRecord) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	return r.ReferenceRepository.UpsertAll(ctx, records)
}

func (r *FailingRepository) takeFailure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.failNext
	r.failNext = nil
	return err
}
