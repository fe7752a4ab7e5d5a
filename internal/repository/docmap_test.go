package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramcivil/monitoring-service/internal/model"
)

func TestDecodeWorkOrderCoercion(t *testing.T) {
	wo := DecodeWorkOrder(map[string]any{
		"id":                                "spk-1",
		"kontrak_payung_id":                 "c-1",
		"no_spk":                            "SPK-001",
		"nilai_rekapitulasi_estimasi_biaya": "400000",
		"realisasi_spk":                     300_000.0,
		"progress_percentage":               int64(80),
	})

	assert.Equal(t, "SPK-001", wo.NoSPK)
	assert.Equal(t, 400_000.0, wo.NilaiEstimasiBiaya, "numeric strings coerce")
	require.NotNil(t, wo.RealisasiSPK)
	assert.Equal(t, 300_000.0, *wo.RealisasiSPK)
	assert.Equal(t, 80, wo.ProgressPercentage)
}

func TestDecodeWorkOrderDefaults(t *testing.T) {
	wo := DecodeWorkOrder(map[string]any{"id": "spk-1"})

	assert.Equal(t, "", wo.NoSPK)
	assert.Equal(t, 0.0, wo.NilaiEstimasiBiaya)
	assert.Nil(t, wo.RealisasiSPK, "absent realisasi stays nil, not zero")
	assert.Equal(t, 0, wo.ProgressPercentage)
}

func TestDecodeWorkOrderClampsProgress(t *testing.T) {
	over := DecodeWorkOrder(map[string]any{"progress_percentage": 140.0})
	assert.Equal(t, 100, over.ProgressPercentage)

	under := DecodeWorkOrder(map[string]any{"progress_percentage": -5.0})
	assert.Equal(t, 0, under.ProgressPercentage)
}

func TestDecodeContractGarbageNumbers(t *testing.T) {
	contract := DecodeContract(map[string]any{
		"id":            "c-1",
		"nilai_kontrak": "bukan angka",
	})
	assert.Equal(t, 0.0, contract.NilaiKontrak)
}

func TestDecodeProfileRole(t *testing.T) {
	admin := DecodeProfile(map[string]any{"user_id": "u1", "role": "admin"})
	assert.Equal(t, model.RoleAdmin, admin.Role)

	guest := DecodeProfile(map[string]any{"user_id": "u2", "role": "guest"})
	assert.Equal(t, model.RoleGuest, guest.Role)

	// Anything unrecognized resolves to guest, never admin.
	weird := DecodeProfile(map[string]any{"user_id": "u3", "role": "superuser"})
	assert.Equal(t, model.RoleGuest, weird.Role)

	missing := DecodeProfile(map[string]any{"user_id": "u4"})
	assert.Equal(t, model.RoleGuest, missing.Role)
}
