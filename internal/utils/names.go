package utils

import (
	"strings"
	"unicode"
)

// ParseFullName splits "Фамилия Имя Отчество" into its parts. Missing parts
// come back empty; anything past the third word is appended to middle.
func ParseFullName(fullname string) (last, first, middle string) {
	parts := strings.Fields(fullname)

	if len(parts) > 0 {
		last = parts[0]
	}
	if len(parts) > 1 {
		first = parts[1]
	}
	if len(parts) > 2 {
		middle = strings.Join(parts[2:], " ")
	}

	return
}

// TitleWords capitalizes the first letter of every whitespace-separated word
// and of every hyphen part, and lower-cases the rest. Words are rejoined with
// single spaces.
func TitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	rs := []rune(strings.ToLower(w))
	if len(rs) == 0 {
		return ""
	}
	for i := range rs {
		if i == 0 || rs[i-1] == '-' {
			rs[i] = unicode.ToUpper(rs[i])
		}
	}
	return string(rs)
}
