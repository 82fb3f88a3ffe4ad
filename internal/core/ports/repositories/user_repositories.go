package repositories

import (
	"context"
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// StudentListFilter holds the optional substring filters for student listing.
type StudentListFilter struct {
	Name       string
	Email      string
	RollNumber string
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByRollNumber retrieves a student by roll number.
	FindUserByRollNumber(ctx context.Context, rollNumber string) (*domain.User, error)

	// FindFirstByRole retrieves one user holding the given role, oldest first.
	FindFirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error)

	// FindUsersByRole retrieves every user holding the given role.
	FindUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)

	// FindStudents retrieves a filtered, paginated list of students together
	// with the total number of matching records.
	FindStudents(ctx context.Context, filter StudentListFilter, limit, offset int) ([]domain.User, int64, error)

	// FindAllStudents retrieves every student (used for CSV export).
	FindAllStudents(ctx context.Context) ([]domain.User, error)

	// FindStudentIDsByDepartment retrieves the IDs of all students enrolled in
	// the given department.
	FindStudentIDsByDepartment(ctx context.Context, departmentID string) ([]string, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserRole changes a user's role (HOD promotion/demotion).
	UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string, updatedAt time.Time) error

	// DisableAccount transitions a user's account to Disabled. The transition
	// is idempotent; the workflow never re-enables an account.
	DisableAccount(ctx context.Context, userID string, updatedBy string, updatedAt time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
