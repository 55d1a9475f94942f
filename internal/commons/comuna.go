package commons

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeComuna returns the lowercase lookup key for a place name: trimmed,
// diacritics removed and inner whitespace collapsed to single spaces.
// "  Ñuñoa " and "nunoa" share the same key.
func NormalizeComuna(name string) string {
	return strings.ToLower(foldComuna(name))
}

// NormalizeComunaUpper is NormalizeComuna with the uppercase convention used
// by couriers whose coverage tables are stored in capitals.
func NormalizeComunaUpper(name string) string {
	return strings.ToUpper(foldComuna(name))
}

func foldComuna(name string) string {
	// transform.Chain keeps internal state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(folded), " ")
}
