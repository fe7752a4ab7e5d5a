package model

// WorkOrder is an SPK issued under a contract. RealisasiSPK stays a
// pointer because the source data distinguishes "not yet reported" from
// an explicit zero; aggregation treats nil as 0.
type WorkOrder struct {
	ID                 string   `json:"id"`
	KontrakPayungID    string   `json:"kontrak_payung_id"`
	NoSPK              string   `json:"no_spk"`
	JudulSPK           string   `json:"judul_spk"`
	DurasiSPK          string   `json:"durasi_spk"`
	NilaiEstimasiBiaya float64  `json:"nilai_rekapitulasi_estimasi_biaya"`
	RealisasiSPK       *float64 `json:"realisasi_spk"`
	ProgressPercentage int      `json:"progress_percentage"`
	Keterangan         string   `json:"keterangan"`
	ImageURL1          string   `json:"image_url_1"`
	ImageURL2          string   `json:"image_url_2"`
	ImageURL3          string   `json:"image_url_3"`
	PDFURL1            string   `json:"pdf_url_1"`
	PDFURL2            string   `json:"pdf_url_2"`
	PDFURL3            string   `json:"pdf_url_3"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// Realized returns the realized value with the nil default applied.
func (w WorkOrder) Realized() float64 {
	if w.RealisasiSPK == nil {
		return 0
	}
	return *w.RealisasiSPK
}
