package services

import (
	"context"

	"github.com/campuslib/library_management_app/internal/core/domain"
	"github.com/campuslib/library_management_app/internal/dto"
)

// ClearanceSvcFacade defines the clearance certification workflow.
type ClearanceSvcFacade interface {
	// SubmitRequest creates a new clearance request for the student. Fails
	// with apperrors.ErrDuplicate while the student's most recent request is
	// still Pending or already Approved.
	SubmitRequest(ctx context.Context, userID string, req dto.SubmitClearanceRequest) (*domain.ClearanceRequest, error)

	// RecordDecision applies one role's Approved/Rejected decision. A
	// rejection terminates the request and notifies the student with the
	// reason. An approval that completes the AND-join finalizes the request:
	// renders the certificate exactly once, disables the student's account
	// and dispatches the approval notification.
	RecordDecision(ctx context.Context, actorUserID string, actorRole domain.UserRole, req dto.DecideClearanceRequest) (*domain.ClearanceRequest, error)

	// ListRequests returns a role-scoped page: admins see all requests
	// filtered by the librarian sub-status, HODs only their own department's
	// students filtered by the HOD sub-status.
	ListRequests(ctx context.Context, actorUserID string, actorRole domain.UserRole, params dto.ListClearanceParams) (*dto.ListClearanceResponse, error)

	// ListOwnRequests returns every request the student has submitted.
	ListOwnRequests(ctx context.Context, userID string) ([]domain.ClearanceRequest, error)
}
