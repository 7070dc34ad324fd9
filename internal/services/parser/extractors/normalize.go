package extractors

import (
	"strings"

	"passport_parser/internal/models"
	"passport_parser/internal/utils"
)

// NormalizeRecord upper-cases the passport number and title-cases every other
// text field. Filename is left as is.
func NormalizeRecord(r models.Record) models.Record {
	r.PassportNumber = strings.ToUpper(strings.TrimSpace(r.PassportNumber))

	for _, f := range []*string{
		&r.SurnameNative, &r.SurnameLatin, &r.GivenNative, &r.GivenLatin,
		&r.BirthDate, &r.Gender, &r.IssueDate, &r.ExpiryDate,
		&r.BirthPlace, &r.Authority, &r.Country,
	} {
		if *f != "" {
			*f = utils.TitleWords(*f)
		}
	}
	return r
}
