package services

import (
	"context"

	"github.com/campuslib/library_management_app/internal/core/domain"
	"github.com/campuslib/library_management_app/internal/dto"
)

// DepartmentSvcFacade defines all department operations.
type DepartmentSvcFacade interface {
	// CreateDepartment creates a department and promotes the chosen teacher
	// to HOD, demoting any previous headship they held.
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)

	// GetDepartmentByID retrieves a department by ID.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// GetDepartmentByHOD retrieves the department headed by the given user.
	GetDepartmentByHOD(ctx context.Context, hodUserID string) (*domain.Department, error)

	// ListDepartments retrieves a paginated page of departments plus the
	// teachers eligible for HOD assignment.
	ListDepartments(ctx context.Context, params dto.ListDepartmentsParams) (*dto.ListDepartmentsResponse, error)

	// UpdateDepartment updates a department's name and/or HOD.
	UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, requestingUserID string) (*domain.Department, error)

	// DeleteDepartment marks a department as deleted (soft delete).
	DeleteDepartment(ctx context.Context, departmentID string, requestingUserID string) error
}
