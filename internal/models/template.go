package models

// TemplateID names a supported passport document layout.
type TemplateID int

const (
	TemplateMyanmar TemplateID = iota
	TemplateTurkmenistan
)

func (t TemplateID) String() string {
	switch t {
	case TemplateMyanmar:
		return "myanmar"
	case TemplateTurkmenistan:
		return "turkmenistan"
	}
	return "unknown"
}

// Country is the tag written to the "Страна" column.
func (t TemplateID) Country() string {
	switch t {
	case TemplateMyanmar:
		return "Мьянма"
	case TemplateTurkmenistan:
		return "Туркменистан"
	}
	return ""
}

// DocumentText is the cleaned, flattened text of one document. Lines holds
// the same non-empty units (paragraphs, then table cells) one per entry.
type DocumentText struct {
	Content string
	Lines   []string
}

// Templates lists every supported layout.
var Templates = []TemplateID{TemplateMyanmar, TemplateTurkmenistan}

// ParseTemplate resolves a template name as produced by String.
func ParseTemplate(name string) (TemplateID, bool) {
	for _, t := range Templates {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}
