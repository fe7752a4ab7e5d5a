package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramcivil/monitoring-service/internal/report"
)

func sampleDocument() *report.Document {
	return &report.Document{
		Title:           "LAPORAN MONITORING",
		OrgName:         "RAM CIVIL",
		OrgUnit:         "PEP Field Subang",
		ContractHeading: "INFORMASI KONTRAK PAYUNG",
		ContractFields: []report.Field{
			{Label: "Nama Kontrak", Value: "Pemeliharaan Jalan Akses"},
			{Label: "Nilai Kontrak", Value: "Rp 1.000.000"},
		},
		SummaryHeading: "RINGKASAN",
		SummaryLines:   []string{"Total SPK: 2", "Total Notifikasi: 1"},
		Sections: []report.Section{
			{
				Heading: "SPK 1: Perbaikan Drainase",
				Fields:  []report.Field{{Label: "No. SPK", Value: "SPK-001"}},
				Rows:    []report.Row{{NoNotif: "N-01", Judul: "Genangan", Lokasi: "KM 3"}},
			},
			{
				Heading:         "SPK 2: Pengecatan Marka",
				Fields:          []report.Field{{Label: "No. SPK", Value: "SPK-002"}},
				NoNotifications: true,
			},
		},
		Footer: "Laporan dibuat pada: 14/03/2025 09.30.00",
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	output, err := NewGenerator().Generate(sampleDocument())
	require.NoError(t, err)

	require.Greater(t, len(output), 4)
	assert.Equal(t, "%PDF", string(output[:4]))
}

func TestGenerateEmptySections(t *testing.T) {
	doc := sampleDocument()
	doc.Sections = nil

	output, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(output[:4]))
}
