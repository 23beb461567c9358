package seo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Importador-api/pkg/seo"
)

// Name deriva un nombre seguro para archivos a partir de nombres reales:
// minúsculas, sin tildes ni eñes, guiones simples.
func TestName_NormalizaNombresLegibles(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ana Gómez", "ana-gomez"},
		{"Muñoz Peña", "munoz-pena"},
		{"ana.gomez@tienda.co", "ana-gomez-tienda-co"},
		{"  espacios   dobles  ", "espacios-dobles"},
		{"---", ""},
		{"", ""},
		{"YA-limpio-123", "ya-limpio-123"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, seo.Name(c.in), "entrada: %q", c.in)
	}
}
