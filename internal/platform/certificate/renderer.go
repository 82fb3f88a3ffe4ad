package certificate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/campuslib/library_management_app/internal/core/domain"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/go-pdf/fpdf"
)

// FPDFRenderer renders clearance certificates as fixed-layout landscape A4
// PDFs under documentsDir. The artifact name is always <requestID>.pdf.
type FPDFRenderer struct {
	documentsDir string
	logoPath     string
}

var _ portssvc.CertificateRenderer = (*FPDFRenderer)(nil)

// NewFPDFRenderer builds a renderer writing into documentsDir. logoPath may
// be empty or point at a missing file; the logo is then skipped.
func NewFPDFRenderer(documentsDir, logoPath string) *FPDFRenderer {
	return &FPDFRenderer{documentsDir: documentsDir, logoPath: logoPath}
}

// ArtifactName returns the file name of the certificate for a request.
func ArtifactName(requestID string) string {
	return requestID + ".pdf"
}

func (r *FPDFRenderer) Render(ctx context.Context, data domain.CertificateData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.documentsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create documents directory: %w", err)
	}

	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	r.drawBorder(pdf)
	r.drawLogo(pdf)
	r.drawHeading(pdf, data)
	r.drawBody(pdf, data)
	r.drawSignatures(pdf, data)

	outPath := filepath.Join(r.documentsDir, ArtifactName(data.RequestID))
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write certificate for request %s: %w", data.RequestID, err)
	}
	return nil
}

func (r *FPDFRenderer) drawBorder(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(0x4c, 0xce, 0xac)
	pdf.SetLineWidth(borderWidth)
	pdf.SetLineJoinStyle("round")
	pdf.Rect(borderInset, borderInset, pageWidth-borderInset*2, pageHeight-borderInset*2, "D")
}

func (r *FPDFRenderer) drawLogo(pdf *fpdf.Fpdf) {
	if r.logoPath == "" {
		return
	}
	if _, err := os.Stat(r.logoPath); err != nil {
		return
	}

	imageType := strings.TrimPrefix(strings.ToLower(filepath.Ext(r.logoPath)), ".")
	opts := fpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptions(r.logoPath, opts)
	if info == nil || pdf.Err() {
		// A broken logo must not sink the certificate.
		pdf.ClearError()
		return
	}

	// Letterbox into the maxWidth x maxHeight box, centered horizontally.
	scale := logoMaxWidth / info.Width()
	if h := logoMaxHeight / info.Height(); h < scale {
		scale = h
	}
	w := info.Width() * scale
	h := info.Height() * scale
	x := (pageWidth - w) / 2
	y := logoY + (logoMaxHeight-h)/2
	pdf.ImageOptions(r.logoPath, x, y, w, h, false, opts, 0, "")
}

func (r *FPDFRenderer) drawHeading(pdf *fpdf.Fpdf, data domain.CertificateData) {
	pdf.SetTextColor(0x02, 0x1c, 0x27)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(0, 150)
	pdf.CellFormat(pageWidth, 14, institutionLine, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(0, 180)
	pdf.CellFormat(pageWidth, 26, Title(data.Type), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(0, 218)
	pdf.CellFormat(pageWidth, 14, fmt.Sprintf("CLEARANCE REQUEST ID : %s", data.RequestID), "", 1, "C", false, 0, "")
}

func (r *FPDFRenderer) drawBody(pdf *fpdf.Fpdf, data domain.CertificateData) {
	const marginX = 72.0
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x02, 0x1c, 0x27)
	pdf.SetXY(marginX, 250)
	pdf.MultiCell(pageWidth-marginX*2, 14, strings.Join(BodyLines(data), "\n"), "", "L", false)
}

func (r *FPDFRenderer) drawSignatures(pdf *fpdf.Fpdf, data domain.CertificateData) {
	pdf.SetDrawColor(0x02, 0x1c, 0x27)
	pdf.SetLineWidth(1)
	pdf.SetAlpha(0.2, "Normal")
	slots := SignatureSlots(data)
	for _, slot := range slots {
		pdf.Line(slot.X, signatureLineY, slot.X+signatureLineLength, signatureLineY)
	}
	pdf.SetAlpha(1, "Normal")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x02, 0x1c, 0x27)
	for _, slot := range slots {
		pdf.SetXY(slot.X, signatureLineY+signatureNameDY)
		pdf.CellFormat(signatureLineLength, 12, slot.Name, "", 0, "C", false, 0, "")
		pdf.SetXY(slot.X, signatureLineY+signatureTitleDY)
		pdf.CellFormat(signatureLineLength, 12, slot.Designation, "", 0, "C", false, 0, "")
	}
}
