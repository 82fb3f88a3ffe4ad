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

type PgxClearanceRepository struct {
	db *pgxpool.Pool
}

func newPgxClearanceRepository(db *pgxpool.Pool) portsrepo.ClearanceRepositoryFacade {
	return &PgxClearanceRepository{db: db}
}

var _ portsrepo.ClearanceRepositoryFacade = (*PgxClearanceRepository)(nil)

func toModelClearanceRequest(d domain.ClearanceRequest) models.ClearanceRequest {
	var reason, link *string
	if d.RejectedReason != "" {
		v := d.RejectedReason
		reason = &v
	}
	if d.PDFLink != "" {
		v := d.PDFLink
		link = &v
	}
	return models.ClearanceRequest{
		RequestID:             d.RequestID,
		UserID:                d.UserID,
		Type:                  string(d.Type),
		AdditionalInformation: d.AdditionalInformation,
		LibrarianApproval:     string(d.LibrarianApproval),
		HODApproval:           string(d.HODApproval),
		Status:                string(d.Status),
		RejectedReason:        reason,
		PDFLink:               link,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainClearanceRequest(m models.ClearanceRequest) domain.ClearanceRequest {
	var reason, link string
	if m.RejectedReason != nil {
		reason = *m.RejectedReason
	}
	if m.PDFLink != nil {
		link = *m.PDFLink
	}
	return domain.ClearanceRequest{
		RequestID:             m.RequestID,
		UserID:                m.UserID,
		Type:                  domain.ClearanceType(m.Type),
		AdditionalInformation: m.AdditionalInformation,
		LibrarianApproval:     domain.ApprovalStatus(m.LibrarianApproval),
		HODApproval:           domain.ApprovalStatus(m.HODApproval),
		Status:                domain.ApprovalStatus(m.Status),
		RejectedReason:        reason,
		PDFLink:               link,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const clearanceColumns = `request_id, user_id, type, additional_information, librarian_approval_status, hod_approval_status, status, rejected_reason, pdf_link, created_at, created_by, last_updated_at, last_updated_by`

func scanClearanceRequest(row pgx.Row) (models.ClearanceRequest, error) {
	var m models.ClearanceRequest
	err := row.Scan(
		&m.RequestID,
		&m.UserID,
		&m.Type,
		&m.AdditionalInformation,
		&m.LibrarianApproval,
		&m.HODApproval,
		&m.Status,
		&m.RejectedReason,
		&m.PDFLink,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// approvalColumnFor maps a deciding role to the sub-status column it owns.
// Only Admin and HOD ever reach the writers; anything else is a programming
// error upstream.
func approvalColumnFor(role domain.UserRole) (string, error) {
	switch role {
	case domain.RoleAdmin:
		return "librarian_approval_status", nil
	case domain.RoleHOD:
		return "hod_approval_status", nil
	default:
		return "", fmt.Errorf("role %s cannot record clearance decisions: %w", role, apperrors.ErrForbidden)
	}
}

func (r *PgxClearanceRepository) SaveRequest(ctx context.Context, request domain.ClearanceRequest) error {
	m := toModelClearanceRequest(request)
	query := `
        INSERT INTO clearance_requests (request_id, user_id, type, additional_information, librarian_approval_status, hod_approval_status, status, rejected_reason, pdf_link, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		m.RequestID,
		m.UserID,
		m.Type,
		m.AdditionalInformation,
		m.LibrarianApproval,
		m.HODApproval,
		m.Status,
		m.RejectedReason,
		m.PDFLink,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save clearance request: %w", err)
	}
	return nil
}

func (r *PgxClearanceRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ClearanceRequest, error) {
	query := `
		SELECT ` + clearanceColumns + `
		FROM clearance_requests
		WHERE request_id = $1;
	`
	m, err := scanClearanceRequest(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find clearance request by ID %s: %w", requestID, err)
	}

	d := toDomainClearanceRequest(m)
	return &d, nil
}

func (r *PgxClearanceRepository) FindLatestRequestByUser(ctx context.Context, userID string) (*domain.ClearanceRequest, error) {
	query := `
		SELECT ` + clearanceColumns + `
		FROM clearance_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanClearanceRequest(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest clearance request for user %s: %w", userID, err)
	}

	d := toDomainClearanceRequest(m)
	return &d, nil
}

func (r *PgxClearanceRepository) FindRequestsByUser(ctx context.Context, userID string) ([]domain.ClearanceRequest, error) {
	query := `
		SELECT ` + clearanceColumns + `
		FROM clearance_requests
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clearance requests for user %s: %w", userID, err)
	}
	defer rows.Close()

	requests := []domain.ClearanceRequest{}
	for rows.Next() {
		m, err := scanClearanceRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clearance request row: %w", err)
		}
		requests = append(requests, toDomainClearanceRequest(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating clearance request rows: %w", rows.Err())
	}

	return requests, nil
}

func (r *PgxClearanceRepository) FindRequestsByLibrarianStatus(ctx context.Context, status domain.ApprovalStatus, limit, offset int) ([]domain.ClearanceRequest, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM clearance_requests WHERE librarian_approval_status = $1`
	if err := r.db.QueryRow(ctx, countQuery, string(status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clearance requests: %w", err)
	}

	query := `
		SELECT ` + clearanceColumns + `
		FROM clearance_requests
		WHERE librarian_approval_status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clearance requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.ClearanceRequest{}
	for rows.Next() {
		m, err := scanClearanceRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan clearance request row: %w", err)
		}
		requests = append(requests, toDomainClearanceRequest(m))
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating clearance request rows: %w", rows.Err())
	}

	return requests, total, nil
}

func (r *PgxClearanceRepository) FindRequestsByHODStatus(ctx context.Context, status domain.ApprovalStatus, studentIDs []string, limit, offset int) ([]domain.ClearanceRequest, int64, error) {
	if len(studentIDs) == 0 {
		return []domain.ClearanceRequest{}, 0, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM clearance_requests WHERE hod_approval_status = $1 AND user_id = ANY($2)`
	if err := r.db.QueryRow(ctx, countQuery, string(status), studentIDs).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clearance requests: %w", err)
	}

	query := `
		SELECT ` + clearanceColumns + `
		FROM clearance_requests
		WHERE hod_approval_status = $1 AND user_id = ANY($2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.db.Query(ctx, query, string(status), studentIDs, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clearance requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.ClearanceRequest{}
	for rows.Next() {
		m, err := scanClearanceRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan clearance request row: %w", err)
		}
		requests = append(requests, toDomainClearanceRequest(m))
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating clearance request rows: %w", rows.Err())
	}

	return requests, total, nil
}

func (r *PgxClearanceRepository) RecordApproval(ctx context.Context, requestID string, role domain.UserRole, updatedBy string, updatedAt time.Time) error {
	column, err := approvalColumnFor(role)
	if err != nil {
		return err
	}

	// The status guard makes concurrent decisions safe: once the request has
	// left Pending no sub-status write can land.
	query := fmt.Sprintf(`
        UPDATE clearance_requests
        SET %s = 'Approved', last_updated_at = $1, last_updated_by = $2
        WHERE request_id = $3 AND status = 'Pending';
    `, column)
	cmdTag, err := r.db.Exec(ctx, query, updatedAt, updatedBy, requestID)
	if err != nil {
		return fmt.Errorf("failed to record approval on request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, requestID)
	}
	return nil
}

func (r *PgxClearanceRepository) RecordRejection(ctx context.Context, requestID string, role domain.UserRole, reason string, updatedBy string, updatedAt time.Time) error {
	column, err := approvalColumnFor(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
        UPDATE clearance_requests
        SET %s = 'Rejected', status = 'Rejected', rejected_reason = $1, last_updated_at = $2, last_updated_by = $3
        WHERE request_id = $4 AND status = 'Pending';
    `, column)
	cmdTag, err := r.db.Exec(ctx, query, reason, updatedAt, updatedBy, requestID)
	if err != nil {
		return fmt.Errorf("failed to record rejection on request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, requestID)
	}
	return nil
}

func (r *PgxClearanceRepository) PromoteToApproved(ctx context.Context, requestID string, updatedBy string, updatedAt time.Time) (bool, error) {
	query := `
        UPDATE clearance_requests
        SET status = 'Approved', last_updated_at = $1, last_updated_by = $2
        WHERE request_id = $3
          AND status = 'Pending'
          AND librarian_approval_status = 'Approved'
          AND hod_approval_status = 'Approved';
    `
	cmdTag, err := r.db.Exec(ctx, query, updatedAt, updatedBy, requestID)
	if err != nil {
		return false, fmt.Errorf("failed to promote request %s to approved: %w", requestID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxClearanceRepository) SetPDFLink(ctx context.Context, requestID string, link string, updatedBy string, updatedAt time.Time) error {
	// Write-once: the link never changes after the first successful render.
	query := `
        UPDATE clearance_requests
        SET pdf_link = $1, last_updated_at = $2, last_updated_by = $3
        WHERE request_id = $4 AND pdf_link IS NULL;
    `
	_, err := r.db.Exec(ctx, query, link, updatedAt, updatedBy, requestID)
	if err != nil {
		return fmt.Errorf("failed to set pdf link on request %s: %w", requestID, err)
	}
	return nil
}

// classifyMissedWrite distinguishes a missing request from one that already
// reached a terminal status when a guarded update touched zero rows.
func (r *PgxClearanceRepository) classifyMissedWrite(ctx context.Context, requestID string) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM clearance_requests WHERE request_id = $1`, requestID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to re-read request %s: %w", requestID, err)
	}
	return apperrors.ErrDuplicate
}
