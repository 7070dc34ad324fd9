package extractors

import (
	"fmt"
	"log"
	"runtime/debug"

	"passport_parser/internal/models"
	"passport_parser/internal/ports"
)

// Extractor fills rec from one document of its template. Fields whose label
// is missing stay empty; that is not an error.
type Extractor interface {
	Template() models.TemplateID
	Extract(doc models.DocumentText, rec *models.Record) error
}

// Registry maps every TemplateID to the extractor that handles it.
type Registry map[models.TemplateID]Extractor

// NameBook holds the curated Latin spellings per template.
type NameBook map[models.TemplateID]ports.NameLookup

// DefaultRegistry wires both templates. names may be nil.
func DefaultRegistry(names NameBook) Registry {
	lookup := func(t models.TemplateID) ports.NameLookup {
		if l := names[t]; l != nil {
			return l
		}
		return ports.NameMap{}
	}
	return Registry{
		models.TemplateMyanmar:      Myanmar{Names: lookup(models.TemplateMyanmar)},
		models.TemplateTurkmenistan: Turkmenistan{Names: lookup(models.TemplateTurkmenistan)},
	}
}

// Run executes ex and never panics. On failure the returned record keeps
// whatever fields were filled before the error.
func Run(ex Extractor, doc models.DocumentText) (rec models.Record, err error) {
	tpl := ex.Template()
	rec.Country = tpl.Country()

	defer func() {
		if p := recover(); p != nil {
			log.Printf("[EXTRACT][%s][PANIC] %v\n%s", tpl, p, debug.Stack())
			err = fmt.Errorf("%s extractor: %v", tpl, p)
		}
	}()

	if err = ex.Extract(doc, &rec); err != nil {
		log.Printf("[EXTRACT][%s][ERR] %v", tpl, err)
	}
	return rec, err
}
