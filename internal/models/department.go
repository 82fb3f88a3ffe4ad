package models

import "time"

// Department is the database representation of an academic department.
type Department struct {
	DepartmentID string  `db:"department_id"`
	Name         string  `db:"name"`
	HODUserID    *string `db:"hod_user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
