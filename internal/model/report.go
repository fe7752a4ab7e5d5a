package model

// Report is the fully-hydrated aggregate the document generators consume:
// one contract plus its work orders, each with its notifications already
// attached in arrival order. The report endpoint accepts this shape
// directly; the HTML route hydrates it from the store.
type Report struct {
	Kontrak ReportContract    `json:"kontrak"`
	SPKList []ReportWorkOrder `json:"spkList"`
}

type ReportContract struct {
	ID                string  `json:"id"`
	NamaKontrakPayung string  `json:"nama_kontrak_payung"`
	NomorOAS          string  `json:"nomor_oas"`
	WaktuPerjanjian   string  `json:"waktu_perjanjian"`
	PeriodeKontrak    string  `json:"periode_kontrak"`
	NilaiKontrak      float64 `json:"nilai_kontrak"`
}

type ReportWorkOrder struct {
	ID                 string               `json:"id"`
	NoSPK              string               `json:"no_spk"`
	JudulSPK           string               `json:"judul_spk"`
	DurasiSPK          string               `json:"durasi_spk"`
	NilaiEstimasiBiaya float64              `json:"nilai_rekapitulasi_estimasi_biaya"`
	RealisasiSPK       *float64             `json:"realisasi_spk"`
	ProgressPercentage int                  `json:"progress_percentage"`
	Keterangan         string               `json:"keterangan"`
	Notifikasi         []ReportNotification `json:"notifikasi"`
}

func (w ReportWorkOrder) Realized() float64 {
	if w.RealisasiSPK == nil {
		return 0
	}
	return *w.RealisasiSPK
}

type ReportNotification struct {
	ID              string `json:"id"`
	NoNotif         string `json:"no_notif"`
	JudulNotifikasi string `json:"judul_notifikasi"`
	Lokasi          string `json:"lokasi"`
}
