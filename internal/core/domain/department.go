package domain

import "time"

// Department represents an academic department. Each department may have at
// most one head (HOD); a teacher promoted to HOD loses any previous headship.
type Department struct {
	DepartmentID string  `json:"departmentID"` // Primary Key (UUID)
	Name         string  `json:"name"`
	HODUserID    *string `json:"hodUserID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
