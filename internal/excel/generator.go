package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ramcivil/monitoring-service/internal/report"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the report document as a workbook: one summary sheet,
// one sheet per work-order section. Content and order mirror the PDF.
func (g *Generator) Generate(doc *report.Document) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Ringkasan"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, doc); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for i, section := range doc.Sections {
		sheetName := buildSheetName(i, section.Heading, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeSection(file, sheetName, section); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, doc *report.Document) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", doc.Title)
	set("A2", doc.OrgName)
	set("A3", doc.OrgUnit)

	row := 5
	set(fmt.Sprintf("A%d", row), doc.ContractHeading)
	for _, field := range doc.ContractFields {
		row++
		set(fmt.Sprintf("A%d", row), field.Label)
		set(fmt.Sprintf("B%d", row), field.Value)
	}

	row += 2
	set(fmt.Sprintf("A%d", row), doc.SummaryHeading)
	for _, line := range doc.SummaryLines {
		row++
		set(fmt.Sprintf("A%d", row), line)
	}

	row += 2
	set(fmt.Sprintf("A%d", row), doc.Footer)

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "B", 30)
	return nil
}

func (g *Generator) writeSection(file *excelize.File, sheet string, section report.Section) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", section.Heading)

	row := 2
	for _, field := range section.Fields {
		row++
		set(fmt.Sprintf("A%d", row), field.Label)
		set(fmt.Sprintf("B%d", row), field.Value)
	}

	row += 2
	if section.NoNotifications {
		set(fmt.Sprintf("A%d", row), report.PlaceholderText())
		return nil
	}

	headers := []string{"No. Notif", "Judul Notifikasi", "Lokasi"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		set(cell, header)
	}
	for _, notif := range section.Rows {
		row++
		set(fmt.Sprintf("A%d", row), notif.NoNotif)
		set(fmt.Sprintf("B%d", row), notif.Judul)
		set(fmt.Sprintf("C%d", row), notif.Lokasi)
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 30)
	return nil
}

// Sheet names are capped at 31 chars and deduplicated; excelize rejects
// duplicates and several punctuation characters.
func buildSheetName(index int, heading string, used map[string]struct{}) string {
	name := sanitizeSheetName(heading)
	if name == "" {
		name = fmt.Sprintf("SPK %d", index+1)
	}
	if runes := []rune(name); len(runes) > 28 {
		name = string(runes[:28])
	}
	candidate := name
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s %d", name, n)
	}
}

func sanitizeSheetName(input string) string {
	replacer := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")
	return strings.TrimSpace(replacer.Replace(input))
}
