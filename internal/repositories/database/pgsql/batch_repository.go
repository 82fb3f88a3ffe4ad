package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	"github.com/campuslib/library_management_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBatchRepository struct {
	db *pgxpool.Pool
}

func newPgxBatchRepository(db *pgxpool.Pool) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{db: db}
}

var _ portsrepo.BatchRepositoryFacade = (*PgxBatchRepository)(nil)

func toDomainBatch(m models.Batch) domain.Batch {
	return domain.Batch{
		BatchID: m.BatchID,
		Name:    m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

const batchColumns = `batch_id, name, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanBatch(row pgx.Row) (models.Batch, error) {
	var m models.Batch
	err := row.Scan(
		&m.BatchID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxBatchRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	query := `
        INSERT INTO batches (batch_id, name, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		batch.BatchID,
		batch.Name,
		batch.CreatedAt,
		batch.CreatedBy,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save batch: %w", err)
	}
	return nil
}

func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE batch_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanBatch(r.db.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch by ID %s: %w", batchID, err)
	}

	d := toDomainBatch(m)
	return &d, nil
}

func (r *PgxBatchRepository) FindBatchByName(ctx context.Context, name string) (*domain.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE lower(name) = lower($1) AND deleted_at IS NULL;
	`
	m, err := scanBatch(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch by name: %w", err)
	}

	d := toDomainBatch(m)
	return &d, nil
}

func (r *PgxBatchRepository) FindBatches(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Batch, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE deleted_at IS NULL AND ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM batches `+where, nameQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	query := `
		SELECT ` + batchColumns + `
		FROM batches ` + where + `
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, nameQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	batches := []domain.Batch{}
	for rows.Next() {
		m, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan batch row: %w", err)
		}
		batches = append(batches, toDomainBatch(m))
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating batch rows: %w", rows.Err())
	}

	return batches, total, nil
}

func (r *PgxBatchRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	query := `
        UPDATE batches
        SET name = $1, last_updated_at = $2, last_updated_by = $3
        WHERE batch_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		batch.Name,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
		batch.BatchID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to execute update batch query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("batch not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBatchRepository) MarkBatchDeleted(ctx context.Context, batchID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE batches
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE batch_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, batchID)
	if err != nil {
		return fmt.Errorf("failed to mark batch as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("batch not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
