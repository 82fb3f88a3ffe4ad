package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/utils"
	"github.com/google/uuid"
)

type batchService struct {
	BaseService
	batchRepo portsrepo.BatchRepositoryFacade
}

// NewBatchService creates a new batch service.
func NewBatchService(batchRepo portsrepo.BatchRepositoryFacade) portssvc.BatchSvcFacade {
	return &batchService{batchRepo: batchRepo}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

func (s *batchService) CreateBatch(ctx context.Context, req dto.CreateBatchRequest, creatorUserID string) (*domain.Batch, error) {
	if _, err := s.batchRepo.FindBatchByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("batch name already in use: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check batch name: %w", err)
	}

	now := time.Now()
	batch := domain.Batch{
		BatchID: uuid.NewString(),
		Name:    req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.batchRepo.SaveBatch(ctx, batch); err != nil {
		s.LogError(ctx, err, "Failed to save batch", "name", req.Name)
		return nil, fmt.Errorf("failed to save batch: %w", err)
	}
	return &batch, nil
}

func (s *batchService) GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	return s.batchRepo.FindBatchByID(ctx, batchID)
}

func (s *batchService) ListBatches(ctx context.Context, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error) {
	limit, offset := utils.NormalizePagination(params.Page, params.Limit)

	batches, total, err := s.batchRepo.FindBatches(ctx, params.Query, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list batches")
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	responses := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, dto.ToBatchResponse(&batches[i]))
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	return &dto.ListBatchesResponse{
		Batches:      responses,
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   utils.TotalPages(total, limit),
	}, nil
}

func (s *batchService) UpdateBatch(ctx context.Context, batchID string, req dto.UpdateBatchRequest, requestingUserID string) (*domain.Batch, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if req.Name != batch.Name {
		if existing, err := s.batchRepo.FindBatchByName(ctx, req.Name); err == nil && existing.BatchID != batchID {
			return nil, fmt.Errorf("batch name already in use: %w", apperrors.ErrDuplicate)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check batch name: %w", err)
		}
	}

	batch.Name = req.Name
	batch.LastUpdatedAt = time.Now()
	batch.LastUpdatedBy = requestingUserID

	if err := s.batchRepo.UpdateBatch(ctx, *batch); err != nil {
		s.LogError(ctx, err, "Failed to update batch", "batch_id", batchID)
		return nil, fmt.Errorf("failed to update batch: %w", err)
	}
	return batch, nil
}

func (s *batchService) DeleteBatch(ctx context.Context, batchID string, requestingUserID string) error {
	return s.batchRepo.MarkBatchDeleted(ctx, batchID, time.Now(), requestingUserID)
}
