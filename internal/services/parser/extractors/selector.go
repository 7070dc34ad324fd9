package extractors

import (
	"strings"

	"passport_parser/internal/models"
)

// Keywords are checked in this order and the first hit wins, so a document
// naming both countries is read as Turkmen.
var templateKeywords = []struct {
	keyword  string
	template models.TemplateID
}{
	{"туркмен", models.TemplateTurkmenistan},
	{"turkmen", models.TemplateTurkmenistan},
	{"мьянм", models.TemplateMyanmar},
	{"myanmar", models.TemplateMyanmar},
	{"бирм", models.TemplateMyanmar},
}

// DefaultTemplate handles documents that carry no country keyword.
const DefaultTemplate = models.TemplateMyanmar

// SelectTemplate picks the extractor for doc by keyword presence.
func SelectTemplate(doc models.DocumentText) models.TemplateID {
	content := strings.ToLower(doc.Content)
	for _, k := range templateKeywords {
		if strings.Contains(content, k.keyword) {
			return k.template
		}
	}
	return DefaultTemplate
}
