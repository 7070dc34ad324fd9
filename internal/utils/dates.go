package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var monthsGenitive = map[string]string{
	"ЯНВАРЯ":   "01",
	"ФЕВРАЛЯ":  "02",
	"МАРТА":    "03",
	"АПРЕЛЯ":   "04",
	"МАЯ":      "05",
	"ИЮНЯ":     "06",
	"ИЮЛЯ":     "07",
	"АВГУСТА":  "08",
	"СЕНТЯБРЯ": "09",
	"ОКТЯБРЯ":  "10",
	"НОЯБРЯ":   "11",
	"ДЕКАБРЯ":  "12",
}

const unknownMonth = "??"

var (
	wordDate    = regexp.MustCompile(`(\d{1,2})\s+([А-Яа-яЁё]+)\s+(\d{4})`)
	numericDate = regexp.MustCompile(`(\d{1,2})[./-](\d{1,2})[./-](\d{4})`)
)

// NormalizeDate converts "5 марта 2020" to "05.03.2020". An unknown month
// word yields "??" in the month position; no date at all yields "".
func NormalizeDate(fragment string) string {
	m := wordDate.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return formatDate(m[1], monthCode(m[2]), m[3])
}

// FindDate locates the first date in s, in either word-month or numeric
// form, and returns it normalized together with the byte offset just past
// the match. ok is false when s holds no date.
func FindDate(s string) (date string, end int, ok bool) {
	wl := wordDate.FindStringSubmatchIndex(s)
	nl := numericDate.FindStringSubmatchIndex(s)

	switch {
	case wl == nil && nl == nil:
		return "", 0, false
	case nl == nil || (wl != nil && wl[0] < nl[0]):
		return formatDate(s[wl[2]:wl[3]], monthCode(s[wl[4]:wl[5]]), s[wl[6]:wl[7]]), wl[1], true
	default:
		month := s[nl[4]:nl[5]]
		if len(month) == 1 {
			month = "0" + month
		}
		return formatDate(s[nl[2]:nl[3]], month, s[nl[6]:nl[7]]), nl[1], true
	}
}

func monthCode(word string) string {
	if code, ok := monthsGenitive[strings.ToUpper(word)]; ok {
		return code
	}
	return unknownMonth
}

func formatDate(day, month, year string) string {
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s.%s.%s", day, month, year)
}
