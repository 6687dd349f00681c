package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Contrato social", SanitizeString("  Contrato\x00 social\x7f \n"))
	assert.Equal(t, "", SanitizeString("\t\r\n"))
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "informe-2024.pdf", "informe-2024.pdf"},
		{"unix path", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\ana\DARF janeiro.pdf`, "DARF janeiro.pdf"},
		{"reserved chars", `nota<fiscal>?.xml`, "nota_fiscal_.xml"},
		{"only dots", "..", ""},
		{"empty", "", ""},
		{"accents kept", "recibo médico.jpg", "recibo médico.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200) + ".pdf"

	got := SanitizeFileName(long)

	assert.LessOrEqual(t, len(got), maxFileNameLength)
	assert.True(t, strings.HasPrefix(got, "é"))
	assert.NotContains(t, got, "\uFFFD")
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "balanco", BaseName("balanco.xlsx"))
	assert.Equal(t, "sem-extensao", BaseName("sem-extensao"))
}
