package domain

// ApprovalStatus is the state recorded by one approving role, and also the
// derived overall state of a clearance request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// ClearanceType drives the certificate wording.
type ClearanceType string

const (
	ClearanceGraduation ClearanceType = "Graduation"
	ClearanceTransfer   ClearanceType = "Transfer"
)

// ClearanceRequest tracks a student's request to be certified as having no
// outstanding library obligations. Two roles record independent decisions;
// Status is always derived from the two sub-statuses via OverallStatus and
// is never set directly.
type ClearanceRequest struct {
	RequestID             string         `json:"requestID"` // Primary Key (UUID)
	UserID                string         `json:"userID"`    // the requesting student
	Type                  ClearanceType  `json:"type"`
	AdditionalInformation string         `json:"additionalInformation,omitempty"`
	LibrarianApproval     ApprovalStatus `json:"librarianApprovalStatus"`
	HODApproval           ApprovalStatus `json:"hodApprovalStatus"`
	Status                ApprovalStatus `json:"status"`
	RejectedReason        string         `json:"rejectedReason,omitempty"` // set iff Status == Rejected
	PDFLink               string         `json:"pdfLink,omitempty"`        // write-once, set on approval
	AuditFields
}

// OverallStatus reduces the two independent role sub-statuses into the
// overall status of the request. Approval is an AND-join: both roles must
// agree, in either order. Rejection is an OR-short-circuit: either role
// terminates the request regardless of the other's state.
func OverallStatus(librarian, hod ApprovalStatus) ApprovalStatus {
	if librarian == ApprovalRejected || hod == ApprovalRejected {
		return ApprovalRejected
	}
	if librarian == ApprovalApproved && hod == ApprovalApproved {
		return ApprovalApproved
	}
	return ApprovalPending
}

// IsTerminal reports whether the request has left Pending. Terminal requests
// never accept further decisions; a student may submit a new request only
// after a rejection.
func (c *ClearanceRequest) IsTerminal() bool {
	return c.Status != ApprovalPending
}

// ApprovalFor returns the sub-status owned by the given deciding role.
func (c *ClearanceRequest) ApprovalFor(role UserRole) ApprovalStatus {
	if role == RoleHOD {
		return c.HODApproval
	}
	return c.LibrarianApproval
}
