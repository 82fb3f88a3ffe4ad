package services

import (
	"context"

	"github.com/campuslib/library_management_app/internal/core/domain"
	"github.com/campuslib/library_management_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListStudents retrieves a filtered, paginated page of students.
	ListStudents(ctx context.Context, params dto.ListStudentsParams) (*dto.ListStudentsResponse, error)
}

// StudentWriterSvc defines write operations for student records
type StudentWriterSvc interface {
	// CreateStudent registers a student, generates their temporary password
	// and emails them their credentials.
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.User, error)

	// UpdateStudent updates an existing student's details.
	UpdateStudent(ctx context.Context, userID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.User, error)

	// DeleteStudent marks a student as deleted (soft delete).
	DeleteStudent(ctx context.Context, userID string, requestingUserID string) error
}

// UserAccountSvc defines account-lifecycle operations consumed by the
// clearance workflow.
type UserAccountSvc interface {
	// DisableAccount transitions the user's account to Disabled.
	DisableAccount(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// StudentExportSvc produces the roster rows for CSV export.
type StudentExportSvc interface {
	ExportStudents(ctx context.Context) ([]dto.StudentCSVRow, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	StudentWriterSvc
	UserAccountSvc
	UserAuthSvc
	StudentExportSvc
}
