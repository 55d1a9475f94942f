package commons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeComuna(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Providencia", "providencia"},
		{"trims", "  Santiago  ", "santiago"},
		{"strips acute", "Concepción", "concepcion"},
		{"strips tilde", "Ñuñoa", "nunoa"},
		{"collapses inner whitespace", "Viña   del\tMar", "vina del mar"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeComuna(tt.input))
		})
	}
}

func TestNormalizeComunaUpper(t *testing.T) {
	assert.Equal(t, "MAIPU", NormalizeComunaUpper("maipú"))
	assert.Equal(t, "PUERTO MONTT", NormalizeComunaUpper(" Puerto  Montt "))
}

func TestNormalizeComuna_SameKeyForVariants(t *testing.T) {
	assert.Equal(t, NormalizeComuna("Curicó"), NormalizeComuna("curico"))
	assert.Equal(t, NormalizeComunaUpper("Chillán"), NormalizeComunaUpper("CHILLAN"))
}
