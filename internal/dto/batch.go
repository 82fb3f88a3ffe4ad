package dto

import (
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// CreateBatchRequest defines the data needed to create a batch.
type CreateBatchRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateBatchRequest defines the data allowed for updating a batch.
type UpdateBatchRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListBatchesParams defines query parameters for listing batches.
type ListBatchesParams struct {
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
	Query string `form:"q"`
}

// BatchResponse is the public representation of a batch.
type BatchResponse struct {
	BatchID   string    `json:"batchID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListBatchesResponse wraps a page of batches.
type ListBatchesResponse struct {
	Batches      []BatchResponse `json:"batches"`
	Page         int             `json:"page"`
	Limit        int             `json:"limit"`
	TotalRecords int64           `json:"totalRecords"`
	TotalPages   int             `json:"totalPages"`
}

// ToBatchResponse converts a domain.Batch to its DTO.
func ToBatchResponse(b *domain.Batch) BatchResponse {
	return BatchResponse{BatchID: b.BatchID, Name: b.Name, CreatedAt: b.CreatedAt}
}
