package pdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/ramcivil/monitoring-service/internal/report"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the document tree to PDF bytes. Output is buffered
// fully before returning; a failure never hands back a partial document.
func (g *Generator) Generate(doc *report.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 20)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 9, doc.OrgName, "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 13)
	pdf.CellFormat(0, 8, doc.OrgUnit, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont(fontName, "B", 13)
	pdf.CellFormat(0, 8, doc.ContractHeading, "", 1, "L", false, 0, "")
	pdf.Ln(1)
	for _, field := range doc.ContractFields {
		labeledLine(pdf, field.Label, field.Value)
	}
	pdf.Ln(6)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, doc.SummaryHeading, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, line := range doc.SummaryLines {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	for i, section := range doc.Sections {
		if i > 0 {
			pdf.AddPage()
		} else {
			pdf.Ln(6)
		}
		drawSection(pdf, section)
	}

	pdf.Ln(10)
	pdf.SetFont(fontName, "I", 9)
	pdf.CellFormat(0, 6, doc.Footer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawSection(pdf *gofpdf.Fpdf, section report.Section) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, section.Heading, "", 1, "L", false, 0, "")
	pdf.Ln(1)
	for _, field := range section.Fields {
		labeledLine(pdf, field.Label, field.Value)
	}
	pdf.Ln(3)

	if section.NoNotifications {
		pdf.SetFont(fontName, "I", 10)
		pdf.CellFormat(0, 6, report.PlaceholderText(), "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 7, "Daftar Notifikasi:", "", 1, "L", false, 0, "")

	headers := []string{"No. Notif", "Judul Notifikasi", "Lokasi"}
	widths := []float64{35, 80, 59}
	drawTableRow(pdf, headers, widths, true)
	for _, row := range section.Rows {
		drawTableRow(pdf, []string{row.NoNotif, row.Judul, row.Lokasi}, widths, false)
	}
}

func labeledLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont(fontName, "B", 10)
	labelText := label + ":"
	pdf.CellFormat(pdf.GetStringWidth(labelText)+2, 6, labelText, "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
