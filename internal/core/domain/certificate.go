package domain

// CertificateData is the fully resolved input for rendering one clearance
// certificate. It is assembled exactly once per finalized request; lookup
// gaps (missing department, HOD or admin) are filled with fallback text
// before rendering, never at draw time.
type CertificateData struct {
	RequestID        string
	Type             ClearanceType
	StudentName      string
	StudentRollNo    string
	DepartmentName   string
	AdminName        string
	AdminDesignation string
	HODName          string
	HODDesignation   string
}
