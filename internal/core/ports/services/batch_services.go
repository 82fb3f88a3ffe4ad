package services

import (
	"context"

	"github.com/campuslib/library_management_app/internal/core/domain"
	"github.com/campuslib/library_management_app/internal/dto"
)

// BatchSvcFacade defines all batch operations.
type BatchSvcFacade interface {
	CreateBatch(ctx context.Context, req dto.CreateBatchRequest, creatorUserID string) (*domain.Batch, error)
	GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)
	ListBatches(ctx context.Context, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error)
	UpdateBatch(ctx context.Context, batchID string, req dto.UpdateBatchRequest, requestingUserID string) (*domain.Batch, error)
	DeleteBatch(ctx context.Context, batchID string, requestingUserID string) error
}
