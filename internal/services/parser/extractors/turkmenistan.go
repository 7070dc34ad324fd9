package extractors

import (
	"regexp"
	"strings"

	"passport_parser/internal/models"
	"passport_parser/internal/ports"
	"passport_parser/internal/utils"
)

// AuthorityTurkmenistan is the canonical name of the Turkmen passport issuer.
const AuthorityTurkmenistan = "Государственная миграционная служба Туркменистана"

// Turkmenistan reads translations of Turkmen passports laid out as a table:
// each label sits in its own cell and the value in the next one. Running-text
// layouts are covered by a fallback search over the whole content.
type Turkmenistan struct {
	Names ports.NameLookup
}

type tmField struct {
	line *regexp.Regexp
	text *regexp.Regexp
}

func tmLabel(labels ...string) tmField {
	return tmField{line: lineLabelRe(labels...), text: labelRe(labels...)}
}

var (
	tmSurname    = tmLabel("Фамилия")
	tmGiven      = tmLabel("Имя")
	tmFullName   = tmLabel("Ф.И.О.", "Ф. И. О.", "ФИО", "Фамилия, имя, отчество", "Фамилия и имя")
	tmBirthInfo  = tmLabel("Дата рождения / Пол", "Дата рождения/пол", "Дата рождения и пол", "Дата рождения")
	tmGender     = tmLabel("Пол")
	tmBirthPlace = tmLabel("Место рождения")
	tmNumber     = tmLabel("Номер паспорта", "Паспорт №", "№ паспорта", "Номер")
	tmIssueDate  = tmLabel("Дата выдачи")
	tmExpiry     = tmLabel("Дата окончания срока действия", "Действителен до", "Срок действия", "Дата истечения срока")
	tmAuthority  = tmLabel("Орган выдачи", "Кем выдан", "Орган, выдавший паспорт", "Орган, выдавший документ")

	tmStopLabels = []string{
		"Фамилия", "Имя", "Отчество", "Ф.И.О.", "ФИО", "Дата рождения", "Пол",
		"Место рождения", "Номер паспорта", "Паспорт №", "№ паспорта", "Номер",
		"Дата выдачи", "Дата окончания срока действия", "Действителен до",
		"Срок действия", "Дата истечения срока", "Орган выдачи", "Кем выдан",
		"Орган, выдавший паспорт", "Орган, выдавший документ", "Гражданство",
		"Национальность", "Тип", "Код государства", "Личный номер", "Подпись",
	}
	tmLineStops = lineLabelRe(tmStopLabels...)
	tmTextStops = labelRe(tmStopLabels...)

	tmPassportLoose  = regexp.MustCompile(`(?i)(?:^|[^\p{L}\d])([A-ZА-ЯЁ]{1,2}\s?\d{6,})`)
	tmPassportStrict = regexp.MustCompile(`(?:^|[^\p{L}\d])([A-ZА-ЯЁ]{1,2}\d{6,})`)
	tmAuthorityAlias = regexp.MustCompile(`(?i)гмст|миграц`)
)

func (Turkmenistan) Template() models.TemplateID { return models.TemplateTurkmenistan }

func (t Turkmenistan) Extract(doc models.DocumentText, rec *models.Record) error {
	// "Фамилия, имя, отчество" would also satisfy the surname label.
	if full := tmValue(doc, tmFullName); full != "" {
		rec.SurnameNative, rec.GivenNative, _ = utils.ParseFullName(full)
	} else {
		rec.SurnameNative = tmValue(doc, tmSurname)
		rec.GivenNative = tmValue(doc, tmGiven)
	}
	rec.SurnameLatin = utils.ResolveLatin(t.Names, rec.SurnameNative)
	rec.GivenLatin = utils.ResolveLatin(t.Names, rec.GivenNative)

	rec.BirthDate, rec.Gender = splitBirthInfo(tmValue(doc, tmBirthInfo))
	if rec.Gender == "" {
		rec.Gender = parseGender(firstWord(tmValue(doc, tmGender)))
	}

	rec.PassportNumber = passportNumber(tmValue(doc, tmNumber), tmPassportLoose)
	if rec.PassportNumber == "" {
		rec.PassportNumber = passportNumber(doc.Content, tmPassportStrict)
	}

	rec.IssueDate = dateValue(tmValue(doc, tmIssueDate))
	rec.ExpiryDate = dateValue(tmValue(doc, tmExpiry))
	rec.BirthPlace = tmValue(doc, tmBirthPlace)
	rec.Authority = canonicalAuthority(tmValue(doc, tmAuthority))
	return nil
}

// tmValue scans the line list first and falls back to running text.
func tmValue(doc models.DocumentText, f tmField) string {
	if v := lineValue(doc.Lines, f.line, tmLineStops); v != "" {
		return v
	}
	return textValue(doc.Content, f.text, tmTextStops)
}

func canonicalAuthority(s string) string {
	if tmAuthorityAlias.MatchString(strings.ToLower(s)) {
		return AuthorityTurkmenistan
	}
	return s
}
