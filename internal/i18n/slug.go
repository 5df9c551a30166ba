package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// Fold strips diacritics so "Trung thu ấm áp" becomes "Trung thu am ap".
// The Vietnamese đ has no decomposition and is mapped explicitly.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, dStroke.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// Slugify produces a lowercase ASCII URL segment from a title.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(Fold(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
