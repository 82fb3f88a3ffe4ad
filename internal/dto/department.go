package dto

import (
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// CreateDepartmentRequest defines the data needed to create a department.
// HODUserID must reference an existing Teacher; they are promoted on create.
type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	HODUserID string `json:"hodUserID" binding:"required"`
}

// UpdateDepartmentRequest mirrors the create payload; both fields required,
// matching the original admin form.
type UpdateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	HODUserID string `json:"hodUserID" binding:"required"`
}

// ListDepartmentsParams defines query parameters for listing departments.
type ListDepartmentsParams struct {
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
	Query string `form:"q"`
}

// DepartmentResponse is the public representation of a department.
type DepartmentResponse struct {
	DepartmentID string        `json:"departmentID"`
	Name         string        `json:"name"`
	HODUserID    *string       `json:"hodUserID,omitempty"`
	HOD          *UserResponse `json:"hod,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ListDepartmentsResponse wraps a page of departments. Teachers holds the
// users eligible for HOD assignment, mirroring the admin form's needs.
type ListDepartmentsResponse struct {
	Departments  []DepartmentResponse `json:"departments"`
	Teachers     []UserResponse       `json:"teachers,omitempty"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
	TotalRecords int64                `json:"totalRecords"`
	TotalPages   int                  `json:"totalPages"`
}

// ToDepartmentResponse converts a domain.Department to its DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		HODUserID:    d.HODUserID,
		CreatedAt:    d.CreatedAt,
	}
}
