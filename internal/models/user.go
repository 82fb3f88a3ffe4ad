package models

import (
	"time"
)

// User is the database representation of a library user.
type User struct {
	UserID        string  `db:"user_id"`
	Name          string  `db:"name"`
	FatherName    string  `db:"father_name"`
	RollNumber    *string `db:"roll_number"` // unique among students, NULL for staff
	Email         string  `db:"email"`
	PasswordHash  string  `db:"password_hash"`
	Role          string  `db:"role"`
	AccountStatus string  `db:"account_status"`
	DepartmentID  *string `db:"department_id"`
	BatchID       *string `db:"batch_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
