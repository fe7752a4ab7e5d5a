package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFileName(t *testing.T) {
	assert.Equal(t, "laporan-monitoring-Pemeliharaan-Jalan.pdf", buildFileName("Pemeliharaan Jalan", "pdf"))
	assert.Equal(t, "laporan-monitoring.xlsx", buildFileName("", "xlsx"))
	assert.Equal(t, "laporan-monitoring.pdf", buildFileName("///", "pdf"))
	assert.Equal(t, "laporan-monitoring-Kontrak--2024.pdf", buildFileName(`Kontrak "2024"`, "pdf"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "abc_123-X", sanitizeFileName("abc_123-X"))
	assert.Equal(t, "a-b", sanitizeFileName("a b"))
	assert.Equal(t, "", sanitizeFileName("  "))
}
