package slug

import (
	"regexp"
	"strings"
)

// Cyrillic to Latin substitutions applied before sanitizing. Characters
// absent from the table pass through unchanged.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "cz", 'ш': "sh", 'щ': "scz",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "u", 'я': "ja",
}

var (
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	hyphens = regexp.MustCompile(`-{2,}`)
)

// Make turns a display name into a URL-safe slug: lowercase, transliterate,
// replace anything outside {letters, digits, underscore} with a hyphen and
// collapse runs of hyphens. Deterministic, no collision handling; the
// unique index on the slug column rejects duplicates.
func Make(name string) string {
	s := transliterate(strings.ToLower(name))
	s = nonWord.ReplaceAllString(s, "-")
	return hyphens.ReplaceAllString(s, "-")
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if lat, ok := translit[r]; ok {
			b.WriteString(lat)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
