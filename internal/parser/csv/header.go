package csv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader folds a raw header name to a canonical snake_case key:
// diacritics are stripped (NFD → remove combining marks → NFC), letters are
// lowercased, and any run of non-alphanumeric characters collapses to a
// single underscore.
func NormalizeHeader(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var sb strings.Builder
	sb.Grow(len(ascii))
	underscore := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			underscore = false
		default:
			if !underscore && sb.Len() > 0 {
				sb.WriteByte('_')
				underscore = true
			}
		}
	}
	return strings.Trim(sb.String(), "_")
}
