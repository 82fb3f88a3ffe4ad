package repositories

import (
	"context"
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// BatchRepositoryFacade defines persistence operations for student batches.
type BatchRepositoryFacade interface {
	SaveBatch(ctx context.Context, batch domain.Batch) error
	FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)
	FindBatchByName(ctx context.Context, name string) (*domain.Batch, error)
	FindBatches(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Batch, int64, error)
	UpdateBatch(ctx context.Context, batch domain.Batch) error
	MarkBatchDeleted(ctx context.Context, batchID string, deletedAt time.Time, deletedBy string) error
}
