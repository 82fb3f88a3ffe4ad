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

type PgxDepartmentRepository struct {
	db *pgxpool.Pool
}

func newPgxDepartmentRepository(db *pgxpool.Pool) portsrepo.DepartmentRepositoryFacade {
	return &PgxDepartmentRepository{db: db}
}

var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

func toModelDepartment(d domain.Department) models.Department {
	return models.Department{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		HODUserID:    d.HODUserID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
}

func toDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID: m.DepartmentID,
		Name:         m.Name,
		HODUserID:    m.HODUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

const departmentColumns = `department_id, name, hod_user_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanDepartment(row pgx.Row) (models.Department, error) {
	var m models.Department
	err := row.Scan(
		&m.DepartmentID,
		&m.Name,
		&m.HODUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	m := toModelDepartment(department)
	query := `
        INSERT INTO departments (department_id, name, hod_user_id, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		m.DepartmentID,
		m.Name,
		m.HODUserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE department_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanDepartment(r.db.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by ID %s: %w", departmentID, err)
	}

	d := toDomainDepartment(m)
	return &d, nil
}

func (r *PgxDepartmentRepository) FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE lower(name) = lower($1) AND deleted_at IS NULL;
	`
	m, err := scanDepartment(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by name: %w", err)
	}

	d := toDomainDepartment(m)
	return &d, nil
}

func (r *PgxDepartmentRepository) FindDepartmentByHOD(ctx context.Context, hodUserID string) (*domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE hod_user_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanDepartment(r.db.QueryRow(ctx, query, hodUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by HOD %s: %w", hodUserID, err)
	}

	d := toDomainDepartment(m)
	return &d, nil
}

func (r *PgxDepartmentRepository) FindDepartments(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Department, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE deleted_at IS NULL AND ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments `+where, nameQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query := `
		SELECT ` + departmentColumns + `
		FROM departments ` + where + `
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, nameQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		m, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, toDomainDepartment(m))
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating department rows: %w", rows.Err())
	}

	return departments, total, nil
}

func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	m := toModelDepartment(department)
	query := `
        UPDATE departments
        SET name = $1, hod_user_id = $2, last_updated_at = $3, last_updated_by = $4
        WHERE department_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.HODUserID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DepartmentID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to execute update department query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("department not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxDepartmentRepository) ClearHODAssignments(ctx context.Context, hodUserID string, updatedBy string, updatedAt time.Time) error {
	// A teacher promoted elsewhere drops any headship they currently hold.
	// Zero rows affected is fine.
	query := `
        UPDATE departments
        SET hod_user_id = NULL, last_updated_at = $1, last_updated_by = $2
        WHERE hod_user_id = $3 AND deleted_at IS NULL;
    `
	_, err := r.db.Exec(ctx, query, updatedAt, updatedBy, hodUserID)
	if err != nil {
		return fmt.Errorf("failed to clear HOD assignments for user %s: %w", hodUserID, err)
	}
	return nil
}

func (r *PgxDepartmentRepository) MarkDepartmentDeleted(ctx context.Context, departmentID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE departments
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE department_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, departmentID)
	if err != nil {
		return fmt.Errorf("failed to mark department as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("department not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
