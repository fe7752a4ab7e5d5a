package model

// Notification is a notifikasi: a field report filed under a work order,
// optionally with photo and document evidence.
type Notification struct {
	ID              string `json:"id"`
	SPKID           string `json:"spk_id"`
	NoNotif         string `json:"no_notif"`
	JudulNotifikasi string `json:"judul_notifikasi"`
	Lokasi          string `json:"lokasi"`
	ImageURL        string `json:"image_url"`
	PDFURL          string `json:"pdf_url"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
