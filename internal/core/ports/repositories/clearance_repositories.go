package repositories

import (
	"context"
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// ClearanceReader defines read operations for clearance requests.
type ClearanceReader interface {
	// FindRequestByID retrieves a clearance request by ID.
	FindRequestByID(ctx context.Context, requestID string) (*domain.ClearanceRequest, error)

	// FindLatestRequestByUser retrieves the user's most recent request by
	// creation time, or apperrors.ErrNotFound if the user never submitted one.
	FindLatestRequestByUser(ctx context.Context, userID string) (*domain.ClearanceRequest, error)

	// FindRequestsByUser retrieves every request the user has submitted,
	// newest first.
	FindRequestsByUser(ctx context.Context, userID string) ([]domain.ClearanceRequest, error)

	// FindRequestsByLibrarianStatus retrieves requests filtered by the
	// librarian sub-status, paginated, with the total matching count.
	FindRequestsByLibrarianStatus(ctx context.Context, status domain.ApprovalStatus, limit, offset int) ([]domain.ClearanceRequest, int64, error)

	// FindRequestsByHODStatus retrieves requests filtered by the HOD
	// sub-status and restricted to the given student IDs.
	FindRequestsByHODStatus(ctx context.Context, status domain.ApprovalStatus, studentIDs []string, limit, offset int) ([]domain.ClearanceRequest, int64, error)
}

// ClearanceWriter defines the guarded write operations the workflow relies on.
// Every mutation is conditional on the stored state so that concurrent
// decisions cannot double-apply: sub-status and overall-status writes only
// commit while the request is still Pending, and the certificate link is set
// only while empty.
type ClearanceWriter interface {
	// SaveRequest persists a new clearance request.
	SaveRequest(ctx context.Context, request domain.ClearanceRequest) error

	// RecordApproval sets the given role's sub-status to Approved. Returns
	// apperrors.ErrDuplicate if the request has already left Pending.
	RecordApproval(ctx context.Context, requestID string, role domain.UserRole, updatedBy string, updatedAt time.Time) error

	// RecordRejection sets the given role's sub-status to Rejected, the
	// overall status to Rejected and stores the reason. Returns
	// apperrors.ErrDuplicate if the request has already left Pending.
	RecordRejection(ctx context.Context, requestID string, role domain.UserRole, reason string, updatedBy string, updatedAt time.Time) error

	// PromoteToApproved flips the overall status to Approved if and only if
	// both sub-statuses are Approved and the overall status is still Pending.
	// The returned bool reports whether this call performed the transition.
	PromoteToApproved(ctx context.Context, requestID string, updatedBy string, updatedAt time.Time) (bool, error)

	// SetPDFLink stores the certificate link if no link is stored yet.
	SetPDFLink(ctx context.Context, requestID string, link string, updatedBy string, updatedAt time.Time) error
}

// ClearanceRepositoryFacade combines all clearance-related repository interfaces
type ClearanceRepositoryFacade interface {
	ClearanceReader
	ClearanceWriter
}
