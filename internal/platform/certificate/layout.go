package certificate

import (
	"fmt"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// The page is landscape A4 measured in points. All coordinates below are
// carried over from the form the registrar's office signed off on, so they
// are fixed regardless of content length.
const (
	pageWidth  = 842.0
	pageHeight = 595.0

	borderInset = 10.0
	borderWidth = 10.0

	logoMaxWidth  = 140.0
	logoMaxHeight = 70.0
	logoY         = 60.0

	institutionLine = "University Of Azad Jammu & Kashmir Neelum Campus"

	signatureLineY      = 390.0
	signatureLineLength = 174.0
	signatureLineGap    = 32.0
	signatureFirstX     = 128.0
	signatureNameDY     = 10.0
	signatureTitleDY    = 25.0
)

// SignatureSlot is one of the three signature lines at the bottom of the
// form, with its label text already resolved.
type SignatureSlot struct {
	X           float64
	Name        string
	Designation string
}

// Title returns the heading for the given clearance type.
func Title(t domain.ClearanceType) string {
	if t == domain.ClearanceTransfer {
		return "STUDENT TRANSFER CLEARANCE FORM"
	}
	return "STUDENT CLEARANCE FORM"
}

// BodyLines returns the narrative paragraphs and bullet list for the given
// certificate data. Transfer and graduation certificates differ only in
// wording.
func BodyLines(data domain.CertificateData) []string {
	if data.Type == domain.ClearanceTransfer {
		return []string{
			fmt.Sprintf("This certificate confirms that %s, Registration Number %s, from the Department of %s, has requested a Transfer Clearance from the University/Institute Library.", data.StudentName, data.StudentRollNo, data.DepartmentName),
			"",
			"The library certifies that:",
			"- The student has returned all issued library materials.",
			"- No outstanding fines or dues remain.",
			"- All library-related responsibilities have been fulfilled prior to transfer.",
			"",
			"This clearance request has been duly verified and approved by:",
		}
	}
	return []string{
		fmt.Sprintf("This certificate is issued to confirm that %s, bearing Registration Number %s, from the Department of %s, has successfully completed all necessary library-related formalities required for graduation.", data.StudentName, data.StudentRollNo, data.DepartmentName),
		"",
		"The library hereby certifies that the student has:",
		"- Returned all borrowed library materials.",
		"- Cleared all outstanding dues, penalties, or obligations.",
		"- Met all requirements set forth by the University/Institute Library.",
		"",
		"This clearance has been reviewed and approved by:",
	}
}

// SignatureSlots lays out the three signature lines left to right: the
// library admin, the student, and the head of department. Missing names fall
// back to role labels so the form is never rendered with an empty slot.
func SignatureSlots(data domain.CertificateData) [3]SignatureSlot {
	adminName := data.AdminName
	if adminName == "" {
		adminName = "Library Admin"
	}
	adminDesignation := data.AdminDesignation
	if adminDesignation == "" {
		adminDesignation = "Librarian"
	}
	studentName := data.StudentName
	if studentName == "" {
		studentName = "Student"
	}
	hodName := data.HODName
	if hodName == "" {
		hodName = "HOD"
	}
	hodDesignation := data.HODDesignation
	if hodDesignation == "" {
		if data.DepartmentName != "" {
			hodDesignation = fmt.Sprintf("HOD, Department of %s", data.DepartmentName)
		} else {
			hodDesignation = "HOD"
		}
	}

	x1 := signatureFirstX
	x2 := x1 + signatureLineLength + signatureLineGap
	x3 := x2 + signatureLineLength + signatureLineGap

	return [3]SignatureSlot{
		{X: x1, Name: adminName, Designation: adminDesignation},
		{X: x2, Name: studentName, Designation: "Student"},
		{X: x3, Name: hodName, Designation: hodDesignation},
	}
}
