package model

// Contract is a kontrak payung: the umbrella agreement that bounds the
// total budget work orders draw from. Identifiers and timestamps are
// plain strings everywhere above the repository layer; the store's native
// id type never crosses that boundary.
type Contract struct {
	ID                string  `json:"id"`
	Owner             string  `json:"owner"`
	NamaKontrakPayung string  `json:"nama_kontrak_payung"`
	NomorOAS          string  `json:"nomor_oas"`
	WaktuPerjanjian   string  `json:"waktu_perjanjian"`
	PeriodeKontrak    string  `json:"periode_kontrak"`
	NilaiKontrak      float64 `json:"nilai_kontrak"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}
