package models

import "time"

// Batch is the database representation of a student intake batch.
type Batch struct {
	BatchID string `db:"batch_id"`
	Name    string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Category is the database representation of a book category.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
