package models

// ClearanceRequest is the database representation of a clearance request.
// RejectedReason and PDFLink are nullable: the former is populated only on
// rejection, the latter only once, as part of the transition into Approved.
type ClearanceRequest struct {
	RequestID             string  `db:"request_id"`
	UserID                string  `db:"user_id"`
	Type                  string  `db:"type"`
	AdditionalInformation string  `db:"additional_information"`
	LibrarianApproval     string  `db:"librarian_approval_status"`
	HODApproval           string  `db:"hod_approval_status"`
	Status                string  `db:"status"`
	RejectedReason        *string `db:"rejected_reason"`
	PDFLink               *string `db:"pdf_link"`
	AuditFields
}
