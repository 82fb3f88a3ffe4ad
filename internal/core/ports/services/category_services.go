package services

import (
	"context"

	"github.com/campuslib/library_management_app/internal/core/domain"
	"github.com/campuslib/library_management_app/internal/dto"
)

// CategorySvcFacade defines all category operations.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) (*dto.ListCategoriesResponse, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string, requestingUserID string) error
}
