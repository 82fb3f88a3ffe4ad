package repositories

import (
	"context"
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// DepartmentReader defines read operations for department data
type DepartmentReader interface {
	// FindDepartmentByID retrieves a department by ID.
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// FindDepartmentByName retrieves a department by its exact name.
	FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error)

	// FindDepartmentByHOD retrieves the department headed by the given user.
	FindDepartmentByHOD(ctx context.Context, hodUserID string) (*domain.Department, error)

	// FindDepartments retrieves a name-filtered, paginated list of departments
	// with the total number of matching records.
	FindDepartments(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Department, int64, error)
}

// DepartmentWriter defines write operations for department data
type DepartmentWriter interface {
	// SaveDepartment persists a new department.
	SaveDepartment(ctx context.Context, department domain.Department) error

	// UpdateDepartment updates an existing department.
	UpdateDepartment(ctx context.Context, department domain.Department) error

	// ClearHODAssignments removes the given user's headship from any
	// department that currently references them.
	ClearHODAssignments(ctx context.Context, hodUserID string, updatedBy string, updatedAt time.Time) error

	// MarkDepartmentDeleted marks a department as deleted (soft delete).
	MarkDepartmentDeleted(ctx context.Context, departmentID string, deletedAt time.Time, deletedBy string) error
}

// DepartmentRepositoryFacade combines all department-related repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
}
