package seo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics descompone (NFD), elimina las marcas combinantes y
// recompone (NFC): "Muñoz" → "Munoz".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name deriva un nombre seguro para archivos/URLs a partir de un nombre
// legible: minúsculas, sin tildes, solo [a-z0-9-], sin guiones repetidos.
func Name(s string) string {
	if clean, _, err := transform.String(stripDiacritics, s); err == nil {
		s = clean
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
