package repositories

import (
	"context"
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for book categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	FindCategories(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Category, int64, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	MarkCategoryDeleted(ctx context.Context, categoryID string, deletedAt time.Time, deletedBy string) error
}
