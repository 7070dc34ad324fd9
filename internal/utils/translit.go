package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"passport_parser/internal/ports"
)

var cyrillicToLatin = map[rune]string{
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "E",
	'Ж': "ZH", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "KH", 'Ц': "TS", 'Ч': "CH", 'Ш': "SH", 'Щ': "SHCH",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "YU", 'Я': "YA",
}

// Transliterate maps a Cyrillic name to Latin letters word by word. Runes
// without a mapping pass through unchanged, so text already in Latin
// title case comes back as is.
func Transliterate(native string) string {
	words := strings.Fields(native)
	if len(words) == 0 {
		return ""
	}

	// Casers keep state; one per call.
	title := cases.Title(language.Und)
	var b strings.Builder
	for i, w := range words {
		b.Reset()
		for _, r := range strings.ToUpper(w) {
			if lat, ok := cyrillicToLatin[r]; ok {
				b.WriteString(lat)
				continue
			}
			b.WriteRune(r)
		}
		words[i] = title.String(b.String())
	}
	return strings.Join(words, " ")
}

// ResolveLatin returns the curated spelling for native when lookup has one,
// otherwise its transliteration.
func ResolveLatin(lookup ports.NameLookup, native string) string {
	native = strings.TrimSpace(native)
	if native == "" {
		return ""
	}
	if lookup != nil {
		if latin, ok := lookup.LatinFor(native); ok && latin != "" {
			return latin
		}
	}
	return Transliterate(native)
}
