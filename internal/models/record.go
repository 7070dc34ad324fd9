package models

// Record is one document's extracted passport data. Every field is a plain
// string so the schema is fixed-width: an absent value is "".
type Record struct {
	SurnameNative  string
	SurnameLatin   string
	GivenNative    string
	GivenLatin     string
	BirthDate      string
	Gender         string
	PassportNumber string
	IssueDate      string
	ExpiryDate     string
	BirthPlace     string
	Authority      string
	Filename       string
	Country        string
}

// HasData reports whether any extracted field is filled. Filename and Country
// are bookkeeping and do not count.
func (r Record) HasData() bool {
	for _, v := range []string{
		r.SurnameNative, r.SurnameLatin, r.GivenNative, r.GivenLatin,
		r.BirthDate, r.Gender, r.PassportNumber, r.IssueDate, r.ExpiryDate,
		r.BirthPlace, r.Authority,
	} {
		if v != "" {
			return true
		}
	}
	return false
}

// Column is one spreadsheet column and the Record field it reads.
type Column struct {
	Key    string
	Header string
	Get    func(Record) string
}

// Columns is the published column order of the output table.
var Columns = []Column{
	{Key: "surname", Header: "Фамилия", Get: func(r Record) string { return r.SurnameNative }},
	{Key: "surname_latin", Header: "Фамилия (лат.)", Get: func(r Record) string { return r.SurnameLatin }},
	{Key: "given_name", Header: "Имя", Get: func(r Record) string { return r.GivenNative }},
	{Key: "given_name_latin", Header: "Имя (лат.)", Get: func(r Record) string { return r.GivenLatin }},
	{Key: "birth_date", Header: "Дата рождения", Get: func(r Record) string { return r.BirthDate }},
	{Key: "passport_number", Header: "Номер паспорта", Get: func(r Record) string { return r.PassportNumber }},
	{Key: "issue_date", Header: "Дата выдачи", Get: func(r Record) string { return r.IssueDate }},
	{Key: "expiry_date", Header: "Срок действия", Get: func(r Record) string { return r.ExpiryDate }},
	{Key: "birth_place", Header: "Место рождения", Get: func(r Record) string { return r.BirthPlace }},
	{Key: "authority", Header: "Орган выдачи", Get: func(r Record) string { return r.Authority }},
	{Key: "country", Header: "Страна", Get: func(r Record) string { return r.Country }},
	{Key: "gender", Header: "Пол", Get: func(r Record) string { return r.Gender }},
	{Key: "filename", Header: "Файл", Get: func(r Record) string { return r.Filename }},
}

// Row reindexes r into the published column order.
func (r Record) Row() []string {
	row := make([]string, len(Columns))
	for i, c := range Columns {
		row[i] = c.Get(r)
	}
	return row
}

// Headers returns the column headers in published order.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// ColumnIndex returns the position of the column with the given key, or -1.
func ColumnIndex(key string) int {
	for i, c := range Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}
