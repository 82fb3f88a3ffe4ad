package dto

import (
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// SubmitClearanceRequest is the student's submission payload.
type SubmitClearanceRequest struct {
	Type                  string `json:"type" binding:"required,oneof=Graduation Transfer"`
	AdditionalInformation string `json:"additionalInformation"`
}

// DecideClearanceRequest records one role's decision on a request. Reason is
// required when Status is Rejected; the service enforces that rule so the
// error surfaces as a validation failure rather than a bind failure.
type DecideClearanceRequest struct {
	ClearanceRequestID string `json:"clearanceRequestID" binding:"required"`
	Status             string `json:"status" binding:"required,oneof=Approved Rejected"`
	Reason             string `json:"reason"`
}

// ListClearanceParams defines query parameters for role-scoped listing.
// Status filters on the caller's own sub-status column.
type ListClearanceParams struct {
	Status string `form:"status" binding:"required,oneof=Pending Approved Rejected"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

// ClearanceResponse is the public representation of a clearance request.
type ClearanceResponse struct {
	RequestID             string        `json:"requestID"`
	UserID                string        `json:"userID"`
	Student               *UserResponse `json:"student,omitempty"`
	Type                  string        `json:"type"`
	AdditionalInformation string        `json:"additionalInformation,omitempty"`
	LibrarianApproval     string        `json:"librarianApprovalStatus"`
	HODApproval           string        `json:"hodApprovalStatus"`
	Status                string        `json:"status"`
	RejectedReason        string        `json:"rejectedReason,omitempty"`
	PDFLink               string        `json:"pdfLink,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
}

// ListClearanceResponse wraps a page of clearance requests.
type ListClearanceResponse struct {
	ClearanceRequests []ClearanceResponse `json:"clearanceRequests"`
	Page              int                 `json:"page"`
	Limit             int                 `json:"limit"`
	TotalRecords      int64               `json:"totalRecords"`
	TotalPages        int                 `json:"totalPages"`
}

// ToClearanceResponse converts a domain.ClearanceRequest to its DTO.
func ToClearanceResponse(r *domain.ClearanceRequest) ClearanceResponse {
	return ClearanceResponse{
		RequestID:             r.RequestID,
		UserID:                r.UserID,
		Type:                  string(r.Type),
		AdditionalInformation: r.AdditionalInformation,
		LibrarianApproval:     string(r.LibrarianApproval),
		HODApproval:           string(r.HODApproval),
		Status:                string(r.Status),
		RejectedReason:        r.RejectedReason,
		PDFLink:               r.PDFLink,
		CreatedAt:             r.CreatedAt,
	}
}

// ToClearanceResponseList converts a slice of domain clearance requests.
func ToClearanceResponseList(requests []domain.ClearanceRequest) []ClearanceResponse {
	out := make([]ClearanceResponse, len(requests))
	for i := range requests {
		out[i] = ToClearanceResponse(&requests[i])
	}
	return out
}
