// Package report turns a hydrated contract aggregate into a neutral
// document tree. The PDF, HTML and xlsx renderers all walk the same tree,
// which is what keeps their content and ordering identical.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/ramcivil/monitoring-service/internal/model"
)

// ErrMalformed means the aggregate is structurally broken: no contract
// id, or no work-order list at all. An empty list is valid input.
var ErrMalformed = errors.New("malformed report aggregate")

type Field struct {
	Label string
	Value string
}

type Row struct {
	NoNotif string
	Judul   string
	Lokasi  string
}

// Section is one work order's block. NoNotifications marks the
// placeholder row rendered instead of an empty table.
type Section struct {
	Heading         string
	Fields          []Field
	Rows            []Row
	NoNotifications bool
}

type Document struct {
	Title           string
	OrgName         string
	OrgUnit         string
	ContractHeading string
	ContractFields  []Field
	SummaryHeading  string
	SummaryLines    []string
	Sections        []Section
	Footer          string
}

// Build assembles the document tree. Callers are responsible for having
// verified the contract exists; Build only rejects structural absence.
func Build(data model.Report, orgName, orgUnit string, now time.Time) (*Document, error) {
	if data.Kontrak.ID == "" {
		return nil, fmt.Errorf("%w: missing contract id", ErrMalformed)
	}
	if data.SPKList == nil {
		return nil, fmt.Errorf("%w: missing work order list", ErrMalformed)
	}

	totalNotifikasi := 0
	totalEstimasi := 0.0
	totalRealisasi := 0.0
	progressSum := 0
	for _, spk := range data.SPKList {
		totalNotifikasi += len(spk.Notifikasi)
		totalEstimasi += spk.NilaiEstimasiBiaya
		totalRealisasi += spk.Realized()
		progressSum += spk.ProgressPercentage
	}
	avgProgress := 0.0
	if len(data.SPKList) > 0 {
		avgProgress = float64(progressSum) / float64(len(data.SPKList))
	}

	doc := &Document{
		Title:           "LAPORAN MONITORING",
		OrgName:         orgName,
		OrgUnit:         orgUnit,
		ContractHeading: "INFORMASI KONTRAK PAYUNG",
		ContractFields: []Field{
			{Label: "Nama Kontrak", Value: data.Kontrak.NamaKontrakPayung},
			{Label: "Nomor OAS", Value: data.Kontrak.NomorOAS},
			{Label: "Waktu Perjanjian", Value: data.Kontrak.WaktuPerjanjian},
			{Label: "Periode Kontrak", Value: data.Kontrak.PeriodeKontrak},
			{Label: "Nilai Kontrak", Value: FormatIDR(data.Kontrak.NilaiKontrak)},
			{Label: "Sisa Nilai Kontrak", Value: FormatIDR(data.Kontrak.NilaiKontrak - totalRealisasi)},
		},
		SummaryHeading: "RINGKASAN",
		SummaryLines: []string{
			fmt.Sprintf("Total SPK: %d", len(data.SPKList)),
			fmt.Sprintf("Total Notifikasi: %d", totalNotifikasi),
			fmt.Sprintf("Total Nilai SPK: %s", FormatIDR(totalEstimasi)),
			fmt.Sprintf("Total Realisasi SPK: %s", FormatIDR(totalRealisasi)),
			fmt.Sprintf("Rata-rata Progress: %.1f%%", avgProgress),
		},
		Footer: fmt.Sprintf("Laporan dibuat pada: %s", formatTimestamp(now)),
	}

	for i, spk := range data.SPKList {
		doc.Sections = append(doc.Sections, buildSection(i, spk))
	}
	return doc, nil
}

// Work orders are emitted in stored order; sorting happened in the data
// layer, never here.
func buildSection(index int, spk model.ReportWorkOrder) Section {
	section := Section{
		Heading: fmt.Sprintf("SPK %d: %s", index+1, spk.JudulSPK),
		Fields: []Field{
			{Label: "No. SPK", Value: spk.NoSPK},
			{Label: "Durasi SPK", Value: spk.DurasiSPK},
			{Label: "Nilai Estimasi", Value: FormatIDR(spk.NilaiEstimasiBiaya)},
			{Label: "Realisasi SPK", Value: FormatIDR(spk.Realized())},
			{Label: "Progress", Value: fmt.Sprintf("%d%%", spk.ProgressPercentage)},
		},
	}
	if spk.Keterangan != "" {
		section.Fields = append(section.Fields, Field{Label: "Keterangan", Value: spk.Keterangan})
	}

	if len(spk.Notifikasi) == 0 {
		section.NoNotifications = true
		return section
	}
	for _, notif := range spk.Notifikasi {
		section.Rows = append(section.Rows, Row{
			NoNotif: notif.NoNotif,
			Judul:   notif.JudulNotifikasi,
			Lokasi:  notif.Lokasi,
		})
	}
	return section
}

const noNotificationsText = "Belum ada notifikasi untuk SPK ini."

// PlaceholderText is what renderers print for a work order without
// notifications.
func PlaceholderText() string { return noNotificationsText }

func formatTimestamp(t time.Time) string {
	return t.Format("02/01/2006 15.04.05")
}
