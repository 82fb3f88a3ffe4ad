package dto

import (
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// CreateStudentRequest defines the data needed to register a student.
// The account password is generated server-side and mailed to the student.
type CreateStudentRequest struct {
	Name         string  `json:"name" binding:"required"`
	FatherName   string  `json:"fatherName"`
	RollNumber   string  `json:"rollNumber" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	DepartmentID *string `json:"departmentID"`
	BatchID      *string `json:"batchID"`
}

// UpdateStudentRequest defines the data allowed for updating a student.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateStudentRequest struct {
	Name         *string `json:"name"`
	FatherName   *string `json:"fatherName"`
	RollNumber   *string `json:"rollNumber"`
	Email        *string `json:"email" binding:"omitempty,email"`
	DepartmentID *string `json:"departmentID"`
	BatchID      *string `json:"batchID"`
}

// ListStudentsParams defines query parameters for listing students.
type ListStudentsParams struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
	Name       string `form:"qName"`
	Email      string `form:"qEmail"`
	RollNumber string `form:"qRollNumber"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID        string     `json:"userID"`
	Name          string     `json:"name"`
	FatherName    string     `json:"fatherName,omitempty"`
	RollNumber    string     `json:"rollNumber,omitempty"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	AccountStatus string     `json:"accountStatus"`
	DepartmentID  *string    `json:"departmentID,omitempty"`
	BatchID       *string    `json:"batchID,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

// ListStudentsResponse wraps a page of students.
type ListStudentsResponse struct {
	Students     []UserResponse `json:"students"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	TotalRecords int64          `json:"totalRecords"`
	TotalPages   int            `json:"totalPages"`
}

// StudentCSVRow is one line of the student roster export.
type StudentCSVRow struct {
	Name          string `csv:"Name"`
	FatherName    string `csv:"Father Name"`
	RollNumber    string `csv:"Roll Number"`
	Email         string `csv:"Email"`
	Department    string `csv:"Department Name"`
	Batch         string `csv:"Batch"`
	AccountStatus string `csv:"Account Status"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		FatherName:    user.FatherName,
		RollNumber:    user.RollNumber,
		Email:         user.Email,
		Role:          string(user.Role),
		AccountStatus: string(user.AccountStatus),
		DepartmentID:  user.DepartmentID,
		BatchID:       user.BatchID,
		CreatedAt:     user.CreatedAt,
		DeletedAt:     user.DeletedAt,
	}
}

// ToUserResponseList converts a slice of domain users.
func ToUserResponseList(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
