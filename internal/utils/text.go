package utils

import (
	"regexp"
	"strings"

	"passport_parser/internal/models"
)

var spaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// CleanSpaces replaces non-breaking spaces, collapses whitespace runs and trims.
func CleanSpaces(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// NormalizeText flattens paragraph and table-cell texts into one DocumentText.
// Units that are empty after trimming are dropped; the survivors keep their
// order, paragraphs first.
func NormalizeText(paragraphs, cells []string) models.DocumentText {
	lines := make([]string, 0, len(paragraphs)+len(cells))
	for _, group := range [][]string{paragraphs, cells} {
		for _, unit := range group {
			if c := CleanSpaces(unit); c != "" {
				lines = append(lines, c)
			}
		}
	}
	return models.DocumentText{
		Content: strings.Join(lines, " "),
		Lines:   lines,
	}
}
