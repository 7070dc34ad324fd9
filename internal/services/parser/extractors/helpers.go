package extractors

import (
	"regexp"
	"strings"

	"passport_parser/internal/utils"
)

const valueTrim = " \t:-–—/|,;"

// latinGloss is an optional "/Surname:" English echo after a native label.
// It must end in a delimiter so a Latin value like "/ MA1234567" is kept.
const latinGloss = `(?:\s*/\s*[A-Za-z]+(?:[ .'][A-Za-z]+)*\.?\s*[:\-–—])?`

// labelAlt quotes one label. A trailing ":" makes the delimiter mandatory,
// for words that also occur in prose ("выдан").
func labelAlt(l, space string) string {
	if strings.HasSuffix(l, ":") {
		return strings.ReplaceAll(regexp.QuoteMeta(strings.TrimSuffix(l, ":")), " ", space) + `\s*[:\-–—]`
	}
	return strings.ReplaceAll(regexp.QuoteMeta(l), " ", space)
}

// labelRe matches any of the given labels as a standalone word sequence,
// case-insensitively. The match may include one delimiter rune on either side.
func labelRe(labels ...string) *regexp.Regexp {
	alts := make([]string, len(labels))
	for i, l := range labels {
		alts[i] = labelAlt(l, `\s+`)
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:` + strings.Join(alts, "|") + `)` + latinGloss + `(?:[^\p{L}]|$)`)
}

// lineLabelRe matches a label at the start of a line.
func lineLabelRe(labels ...string) *regexp.Regexp {
	alts := make([]string, len(labels))
	for i, l := range labels {
		alts[i] = labelAlt(l, `\s*`)
	}
	return regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(alts, "|") + `)` + latinGloss + `(?:[^\p{L}]|$)`)
}

// textValue captures the text after label up to the earliest stop label or
// the end of content. An absent label yields "".
func textValue(content string, label, stops *regexp.Regexp) string {
	loc := label.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	rest := content[loc[1]:]
	if stops != nil {
		if s := stops.FindStringIndex(rest); s != nil {
			rest = rest[:s[0]]
		}
	}
	return cleanValue(rest)
}

// lineValue finds the first line that starts with label. The value is the
// remainder of that line, or else the next line, unless the next line is
// itself a known label.
func lineValue(lines []string, label, stops *regexp.Regexp) string {
	for i, line := range lines {
		loc := label.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if v := cleanValue(line[loc[1]:]); v != "" {
			return v
		}
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" {
				continue
			}
			if stops != nil && stops.MatchString(next) {
				return ""
			}
			return cleanValue(next)
		}
		return ""
	}
	return ""
}

func cleanValue(s string) string {
	s = utils.CleanSpaces(s)
	s = strings.TrimLeft(s, valueTrim)
	s = strings.TrimRight(s, valueTrim)
	return strings.TrimSpace(s)
}

// parseGender maps a gender keyword to its one-letter code.
func parseGender(s string) string {
	s = strings.ToLower(strings.Trim(strings.TrimSpace(s), ".,;:"))
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "муж"), s == "м", s == "m", s == "male":
		return "М"
	case strings.HasPrefix(s, "жен"), s == "ж", s == "f", s == "female":
		return "Ж"
	}
	return ""
}

// splitBirthInfo separates "05.03.1990 муж" into a normalized date and a
// gender code. Either part may come back empty.
func splitBirthInfo(s string) (date, gender string) {
	d, end, ok := utils.FindDate(s)
	if !ok {
		return "", parseGender(firstWord(s))
	}
	return d, parseGender(firstWord(cleanValue(s[end:])))
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// passportNumber returns the first match of shape in s with inner spaces
// removed.
func passportNumber(s string, shape *regexp.Regexp) string {
	m := shape.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	v := m[0]
	if len(m) > 1 {
		v = m[1]
	}
	return strings.Join(strings.Fields(v), "")
}
