package extractors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport_parser/internal/models"
	"passport_parser/internal/ports"
	"passport_parser/internal/utils"
)

const myanmarText = "РЕСПУБЛИКА СОЮЗ МЬЯНМА ПАСПОРТ Тип: PJ Код государства: MMR " +
	"Номер паспорта: MA123456 Фамилия: Аунг Имя: Мин Тху Гражданство: Мьянма " +
	"Дата рождения: 5 марта 1990 Пол: М Место рождения: Янгон " +
	"Дата выдачи: 12 января 2019 Дата окончания срока действия: 11 января 2029 " +
	"Орган выдачи: Министерство внутренних дел"

func doc(paragraphs ...string) models.DocumentText {
	return utils.NormalizeText(paragraphs, nil)
}

func tableDoc(cells ...string) models.DocumentText {
	return utils.NormalizeText(nil, cells)
}

func TestMyanmarExtract(t *testing.T) {
	ex := Myanmar{Names: ports.NameMap{ports.NameKey("Аунг"): "Aung"}}

	rec, err := Run(ex, doc(myanmarText))
	require.NoError(t, err)

	assert.Equal(t, "Аунг", rec.SurnameNative)
	assert.Equal(t, "Aung", rec.SurnameLatin)
	assert.Equal(t, "Мин Тху", rec.GivenNative)
	assert.Equal(t, "Min Tkhu", rec.GivenLatin)
	assert.Equal(t, "05.03.1990", rec.BirthDate)
	assert.Equal(t, "М", rec.Gender)
	assert.Equal(t, "MA123456", rec.PassportNumber)
	assert.Equal(t, "12.01.2019", rec.IssueDate)
	assert.Equal(t, "11.01.2029", rec.ExpiryDate)
	assert.Equal(t, "Янгон", rec.BirthPlace)
	assert.Equal(t, "Министерство внутренних дел", rec.Authority)
	assert.Equal(t, "Мьянма", rec.Country)
}

func TestMyanmarPartialExtraction(t *testing.T) {
	rec, err := Run(Myanmar{}, doc("Мьянма", "Фамилия – Зо", "Подпись", "BM 7654321"))
	require.NoError(t, err)

	assert.Equal(t, "Зо", rec.SurnameNative)
	assert.Equal(t, "Zo", rec.SurnameLatin)
	assert.Empty(t, rec.GivenNative)
	assert.Empty(t, rec.BirthDate)
	assert.Empty(t, rec.Authority)
	assert.Equal(t, "BM7654321", rec.PassportNumber)
}

func TestMyanmarUnknownMonthIsKept(t *testing.T) {
	rec, err := Run(Myanmar{}, doc("Дата выдачи: 1 Мартобря 2019"))
	require.NoError(t, err)
	assert.Equal(t, "01.??.2019", rec.IssueDate)
}

func TestTurkmenistanTableLayout(t *testing.T) {
	d := tableDoc(
		"ТУРКМЕНИСТАН", "ПАСПОРТ",
		"Фамилия", "АТАЕВ",
		"Имя", "МЕРГЕН",
		"Дата рождения / Пол", "05.03.1990 муж",
		"Место рождения", "Ашхабад",
		"Номер паспорта", "А 1234567",
		"Дата выдачи:", "12.01.2019",
		"Действителен до", "11 января 2029",
		"Орган выдачи", "ГМСТ",
	)

	rec, err := Run(Turkmenistan{}, d)
	require.NoError(t, err)

	assert.Equal(t, "АТАЕВ", rec.SurnameNative)
	assert.Equal(t, "Ataev", rec.SurnameLatin)
	assert.Equal(t, "МЕРГЕН", rec.GivenNative)
	assert.Equal(t, "Mergen", rec.GivenLatin)
	assert.Equal(t, "05.03.1990", rec.BirthDate)
	assert.Equal(t, "М", rec.Gender)
	assert.Equal(t, "Ашхабад", rec.BirthPlace)
	assert.Equal(t, "А1234567", rec.PassportNumber)
	assert.Equal(t, "12.01.2019", rec.IssueDate)
	assert.Equal(t, "11.01.2029", rec.ExpiryDate)
	assert.Equal(t, AuthorityTurkmenistan, rec.Authority)
	assert.Equal(t, "Туркменистан", rec.Country)
}

func TestTurkmenistanSeparateGenderLine(t *testing.T) {
	d := tableDoc("Туркменистан", "Дата рождения", "05.03.1990", "Пол М")

	rec, err := Run(Turkmenistan{}, d)
	require.NoError(t, err)
	assert.Equal(t, "05.03.1990", rec.BirthDate)
	assert.Equal(t, "М", rec.Gender)
}

func TestTurkmenistanMissingValueBeforeNextLabel(t *testing.T) {
	d := tableDoc("Туркменистан", "Место рождения", "Номер паспорта", "Б7654321")

	rec, err := Run(Turkmenistan{}, d)
	require.NoError(t, err)
	assert.Empty(t, rec.BirthPlace)
	assert.Equal(t, "Б7654321", rec.PassportNumber)
}

func TestTurkmenistanRunningTextFallback(t *testing.T) {
	d := doc("ТУРКМЕНИСТАН Фамилия: Атаева Имя: Огульджан Дата рождения: 05.03.1990 " +
		"Пол: жен Кем выдан: Государственная служба по миграции")

	rec, err := Run(Turkmenistan{}, d)
	require.NoError(t, err)
	assert.Equal(t, "Атаева", rec.SurnameNative)
	assert.Equal(t, "Огульджан", rec.GivenNative)
	assert.Equal(t, "Oguldzhan", rec.GivenLatin)
	assert.Equal(t, "05.03.1990", rec.BirthDate)
	assert.Equal(t, "Ж", rec.Gender)
	assert.Equal(t, AuthorityTurkmenistan, rec.Authority)
}

func TestTurkmenistanFullNameLine(t *testing.T) {
	d := tableDoc("Туркменистан", "Фамилия, имя, отчество", "Атаев Мерген Бердыевич")

	rec, err := Run(Turkmenistan{}, d)
	require.NoError(t, err)
	assert.Equal(t, "Атаев", rec.SurnameNative)
	assert.Equal(t, "Мерген", rec.GivenNative)
}

func TestParseGender(t *testing.T) {
	tests := map[string]string{
		"муж": "М", "Мужской": "М", "м": "М", "M": "М",
		"жен": "Ж", "ЖЕНСКИЙ": "Ж", "ж.": "Ж", "F": "Ж",
		"": "", "неизвестно": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, parseGender(in), "input %q", in)
	}
}

func TestSplitBirthInfo(t *testing.T) {
	date, gender := splitBirthInfo("05.03.1990 муж")
	assert.Equal(t, "05.03.1990", date)
	assert.Equal(t, "М", gender)

	date, gender = splitBirthInfo("1 мая 1985, жен.")
	assert.Equal(t, "01.05.1985", date)
	assert.Equal(t, "Ж", gender)

	date, gender = splitBirthInfo("нет данных")
	assert.Empty(t, date)
	assert.Empty(t, gender)
}

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		text string
		want models.TemplateID
	}{
		{"Паспорт гражданина ТУРКМЕНИСТАНА", models.TemplateTurkmenistan},
		{"Республика Союз Мьянма", models.TemplateMyanmar},
		{"Union of Myanmar", models.TemplateMyanmar},
		{"Мьянма, выдан в Туркменистане", models.TemplateTurkmenistan},
		{"без страны", DefaultTemplate},
		{"", DefaultTemplate},
	}
	for _, tt := range tests {
		d := doc(tt.text)
		got := SelectTemplate(d)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
		assert.Equal(t, got, SelectTemplate(d), "selection must be deterministic")
	}
}

func TestNormalizeRecord(t *testing.T) {
	in := models.Record{
		SurnameNative:  "  иван петров ",
		PassportNumber: " ab123456 ",
		Gender:         "М",
		BirthDate:      "05.03.1990",
		Authority:      "государственная МИГРАЦИОННАЯ служба",
		Filename:       "scan_01.DOCX",
	}
	out := NormalizeRecord(in)

	assert.Equal(t, "Иван Петров", out.SurnameNative)
	assert.Equal(t, "AB123456", out.PassportNumber)
	assert.Equal(t, "М", out.Gender)
	assert.Equal(t, "05.03.1990", out.BirthDate)
	assert.Equal(t, "Государственная Миграционная Служба", out.Authority)
	assert.Equal(t, "scan_01.DOCX", out.Filename)
	assert.Empty(t, out.GivenNative)
}

type panicky struct{}

func (panicky) Template() models.TemplateID { return models.TemplateMyanmar }

func (panicky) Extract(_ models.DocumentText, rec *models.Record) error {
	rec.SurnameNative = "Аунг"
	var lines []string
	_ = lines[3]
	return nil
}

type failing struct{}

func (failing) Template() models.TemplateID { return models.TemplateTurkmenistan }

func (failing) Extract(_ models.DocumentText, rec *models.Record) error {
	rec.PassportNumber = "A1234567"
	return errors.New("unexpected layout")
}

func TestRunRecoversPanicAndKeepsPartialFields(t *testing.T) {
	rec, err := Run(panicky{}, doc("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "myanmar extractor")
	assert.Equal(t, "Аунг", rec.SurnameNative)
	assert.Equal(t, "Мьянма", rec.Country)
}

func TestRunReturnsExtractorError(t *testing.T) {
	rec, err := Run(failing{}, doc("x"))
	require.EqualError(t, err, "unexpected layout")
	assert.Equal(t, "A1234567", rec.PassportNumber)
}

func TestDefaultRegistryCoversEveryTemplate(t *testing.T) {
	reg := DefaultRegistry(nil)
	for _, id := range []models.TemplateID{models.TemplateMyanmar, models.TemplateTurkmenistan} {
		ex, ok := reg[id]
		require.True(t, ok, "template %s not registered", id)
		assert.Equal(t, id, ex.Template())
	}
}

func TestTurkmenistanUsesNameOverrides(t *testing.T) {
	d := tableDoc("Туркменистан", "Фамилия", "Атаев", "Имя", "Мерген")
	names := ports.NameMap{ports.NameKey("Мерген"): "Mergen"}

	rec, err := Run(DefaultRegistry(NameBook{models.TemplateTurkmenistan: names})[models.TemplateTurkmenistan], d)
	require.NoError(t, err)
	assert.Equal(t, "Mergen", rec.GivenLatin)
	assert.Equal(t, "Ataev", rec.SurnameLatin)
}

func TestMyanmarBilingualLabels(t *testing.T) {
	d := doc("Мьянма Фамилия/Surname: Аунг Имя/Given name: Мин Место рождения/Place of birth: Янгон Выдан: Министерство иммиграции")

	rec, err := Run(Myanmar{}, d)
	require.NoError(t, err)
	assert.Equal(t, "Аунг", rec.SurnameNative)
	assert.Equal(t, "Мин", rec.GivenNative)
	assert.Equal(t, "Янгон", rec.BirthPlace)
	assert.Equal(t, "Министерство иммиграции", rec.Authority)
}

func TestMyanmarProseIsNotALabel(t *testing.T) {
	d := doc("Мьянма Фамилия/Surname: Аунг Паспорт выдан Министерством")

	rec, err := Run(Myanmar{}, d)
	require.NoError(t, err)
	assert.Equal(t, "Аунг Паспорт выдан Министерством", rec.SurnameNative)
	assert.Empty(t, rec.Authority)
}

func TestPassportNumberAfterSlashIsKept(t *testing.T) {
	rec, err := Run(Myanmar{}, doc("Мьянма Номер паспорта / MA1234567"))
	require.NoError(t, err)
	assert.Equal(t, "MA1234567", rec.PassportNumber)
}

func TestHyphenatedNameKeepsBothCapitals(t *testing.T) {
	rec, err := Run(Myanmar{}, doc("Мьянма Имя: АННА-МАРИЯ"))
	require.NoError(t, err)

	out := NormalizeRecord(rec)
	assert.Equal(t, "Анна-Мария", out.GivenNative)
	assert.Equal(t, "Anna-Mariya", out.GivenLatin)
}
