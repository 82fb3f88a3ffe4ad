package domain

import "time"

// UserRole identifies what a user is allowed to do in the system.
type UserRole string

const (
	RoleStudent UserRole = "Student"
	RoleTeacher UserRole = "Teacher"
	RoleHOD     UserRole = "HOD"
	RoleAdmin   UserRole = "Admin" // the librarian / back-office administrator
)

// AccountStatus tracks whether a user may still sign in.
// A student's account is disabled exactly once, when their clearance
// request is finalized; it is never re-enabled by the workflow.
type AccountStatus string

const (
	AccountActive   AccountStatus = "Active"
	AccountDisabled AccountStatus = "Disabled"
)

// User represents a library user (student, teacher, HOD or admin) in the domain.
type User struct {
	UserID        string        `json:"userID"` // Primary Key (UUID)
	Name          string        `json:"name"`
	FatherName    string        `json:"fatherName,omitempty"`
	RollNumber    string        `json:"rollNumber,omitempty"` // students only
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Role          UserRole      `json:"role"`
	AccountStatus AccountStatus `json:"accountStatus"`
	DepartmentID  *string       `json:"departmentID,omitempty"`
	BatchID       *string       `json:"batchID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// CanDecideClearance reports whether this role participates in the
// two-party clearance approval.
func (r UserRole) CanDecideClearance() bool {
	return r == RoleAdmin || r == RoleHOD
}
