package dto

import (
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
	Query string `form:"q"`
}

// CategoryResponse is the public representation of a category.
type CategoryResponse struct {
	CategoryID string    `json:"categoryID"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListCategoriesResponse wraps a page of categories.
type ListCategoriesResponse struct {
	Categories   []CategoryResponse `json:"categories"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	TotalRecords int64              `json:"totalRecords"`
	TotalPages   int                `json:"totalPages"`
}

// ToCategoryResponse converts a domain.Category to its DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, CreatedAt: c.CreatedAt}
}
