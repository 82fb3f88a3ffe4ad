package domain

import "time"

// Batch represents a student intake batch (e.g. "Fall 2021").
type Batch struct {
	BatchID string `json:"batchID"` // Primary Key (UUID)
	Name    string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
