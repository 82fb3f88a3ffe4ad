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

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if _, err := s.categoryRepo.FindCategoryByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("category name already in use: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", "name", req.Name)
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) (*dto.ListCategoriesResponse, error) {
	limit, offset := utils.NormalizePagination(params.Page, params.Limit)

	categories, total, err := s.categoryRepo.FindCategories(ctx, params.Query, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, dto.ToCategoryResponse(&categories[i]))
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	return &dto.ListCategoriesResponse{
		Categories:   responses,
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   utils.TotalPages(total, limit),
	}, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		if existing, err := s.categoryRepo.FindCategoryByName(ctx, req.Name); err == nil && existing.CategoryID != categoryID {
			return nil, fmt.Errorf("category name already in use: %w", apperrors.ErrDuplicate)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
	}

	category.Name = req.Name
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = requestingUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", "category_id", categoryID)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, requestingUserID string) error {
	return s.categoryRepo.MarkCategoryDeleted(ctx, categoryID, time.Now(), requestingUserID)
}
