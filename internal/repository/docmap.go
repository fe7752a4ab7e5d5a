package repository

import (
	"encoding/json"
	"strconv"

	"github.com/ramcivil/monitoring-service/internal/model"
)

// One explicit mapping function per entity: every field is defaulted and
// type-checked here exactly once, so nothing downstream ever touches the
// store's untyped shape. Missing or non-numeric currency fields become 0,
// missing timestamps become the empty string.

func DecodeContract(doc map[string]any) model.Contract {
	return model.Contract{
		ID:                docString(doc, "id"),
		Owner:             docString(doc, "owner"),
		NamaKontrakPayung: docString(doc, "nama_kontrak_payung"),
		NomorOAS:          docString(doc, "nomor_oas"),
		WaktuPerjanjian:   docString(doc, "waktu_perjanjian"),
		PeriodeKontrak:    docString(doc, "periode_kontrak"),
		NilaiKontrak:      docNumber(doc, "nilai_kontrak"),
		CreatedAt:         docString(doc, "created_at"),
		UpdatedAt:         docString(doc, "updated_at"),
	}
}

func DecodeWorkOrder(doc map[string]any) model.WorkOrder {
	return model.WorkOrder{
		ID:                 docString(doc, "id"),
		KontrakPayungID:    docString(doc, "kontrak_payung_id"),
		NoSPK:              docString(doc, "no_spk"),
		JudulSPK:           docString(doc, "judul_spk"),
		DurasiSPK:          docString(doc, "durasi_spk"),
		NilaiEstimasiBiaya: docNumber(doc, "nilai_rekapitulasi_estimasi_biaya"),
		RealisasiSPK:       docNumberPtr(doc, "realisasi_spk"),
		ProgressPercentage: clampProgress(int(docNumber(doc, "progress_percentage"))),
		Keterangan:         docString(doc, "keterangan"),
		ImageURL1:          docString(doc, "image_url_1"),
		ImageURL2:          docString(doc, "image_url_2"),
		ImageURL3:          docString(doc, "image_url_3"),
		PDFURL1:            docString(doc, "pdf_url_1"),
		PDFURL2:            docString(doc, "pdf_url_2"),
		PDFURL3:            docString(doc, "pdf_url_3"),
		CreatedAt:          docString(doc, "created_at"),
		UpdatedAt:          docString(doc, "updated_at"),
	}
}

func DecodeNotification(doc map[string]any) model.Notification {
	return model.Notification{
		ID:              docString(doc, "id"),
		SPKID:           docString(doc, "spk_id"),
		NoNotif:         docString(doc, "no_notif"),
		JudulNotifikasi: docString(doc, "judul_notifikasi"),
		Lokasi:          docString(doc, "lokasi"),
		ImageURL:        docString(doc, "image_url"),
		PDFURL:          docString(doc, "pdf_url"),
		CreatedAt:       docString(doc, "created_at"),
		UpdatedAt:       docString(doc, "updated_at"),
	}
}

func DecodeProfile(doc map[string]any) model.Profile {
	role := model.Role(docString(doc, "role"))
	if role != model.RoleAdmin {
		role = model.RoleGuest
	}
	return model.Profile{
		ID:        docString(doc, "id"),
		UserID:    docString(doc, "user_id"),
		FullName:  docString(doc, "full_name"),
		Role:      role,
		CreatedAt: docString(doc, "created_at"),
	}
}

func docString(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func docNumber(doc map[string]any, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func docNumberPtr(doc map[string]any, key string) *float64 {
	if _, ok := doc[key]; !ok {
		return nil
	}
	if doc[key] == nil {
		return nil
	}
	v := docNumber(doc, key)
	return &v
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
