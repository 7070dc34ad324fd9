package extractors

import (
	"regexp"

	"passport_parser/internal/models"
	"passport_parser/internal/ports"
	"passport_parser/internal/utils"
)

// Myanmar reads translations of Myanmar passports, where label and value
// share running text: "Фамилия: Аунг Имя: Мин Тху ...".
type Myanmar struct {
	Names ports.NameLookup
}

var (
	mmSurname    = labelRe("Фамилия")
	mmGiven      = labelRe("Имя", "Имена")
	mmBirthDate  = labelRe("Дата рождения")
	mmGender     = labelRe("Пол")
	mmBirthPlace = labelRe("Место рождения")
	mmNumber     = labelRe("Номер паспорта", "Паспорт №", "Паспорт N", "№ паспорта")
	mmIssueDate  = labelRe("Дата выдачи")
	mmExpiry     = labelRe("Дата окончания срока действия", "Дата истечения срока действия", "Действителен до", "Срок действия")
	mmAuthority  = labelRe("Орган выдачи", "Кем выдан", "Выдан:")

	mmStops = labelRe(
		"Фамилия", "Имя", "Имена", "Дата рождения", "Пол", "Место рождения",
		"Номер паспорта", "Паспорт №", "Паспорт N", "№ паспорта", "Дата выдачи",
		"Дата окончания срока действия", "Дата истечения срока действия",
		"Действителен до", "Срок действия", "Орган выдачи", "Кем выдан", "Выдан:",
		"Тип", "Код государства", "Гражданство", "Национальность",
		"Подпись владельца", "Подпись", "Перевод выполнен", "Переводчик",
	)

	mmPassportShape = regexp.MustCompile(`[A-Z]{1,2}\s?\d{6,}`)
	mmPassportLoose = regexp.MustCompile(`(?i)[a-z]{1,2}\s?\d{6,}`)
)

func (Myanmar) Template() models.TemplateID { return models.TemplateMyanmar }

func (m Myanmar) Extract(doc models.DocumentText, rec *models.Record) error {
	text := doc.Content

	rec.SurnameNative = textValue(text, mmSurname, mmStops)
	rec.GivenNative = textValue(text, mmGiven, mmStops)
	rec.SurnameLatin = utils.ResolveLatin(m.Names, rec.SurnameNative)
	rec.GivenLatin = utils.ResolveLatin(m.Names, rec.GivenNative)

	birth, gender := splitBirthInfo(textValue(text, mmBirthDate, mmStops))
	rec.BirthDate = birth
	if g := parseGender(textValue(text, mmGender, mmStops)); g != "" {
		gender = g
	}
	rec.Gender = gender

	rec.PassportNumber = passportNumber(textValue(text, mmNumber, mmStops), mmPassportLoose)
	if rec.PassportNumber == "" {
		rec.PassportNumber = passportNumber(text, mmPassportShape)
	}

	rec.IssueDate = dateValue(textValue(text, mmIssueDate, mmStops))
	rec.ExpiryDate = dateValue(textValue(text, mmExpiry, mmStops))
	rec.BirthPlace = textValue(text, mmBirthPlace, mmStops)
	rec.Authority = textValue(text, mmAuthority, mmStops)
	return nil
}

// dateValue prefers the "5 марта 2020" form and falls back to numeric dates.
func dateValue(s string) string {
	if d := utils.NormalizeDate(s); d != "" {
		return d
	}
	d, _, _ := utils.FindDate(s)
	return d
}
