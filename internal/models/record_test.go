package models

import "testing"

func TestRowMissingBirthPlaceIsEmptyColumn(t *testing.T) {
	r := Record{SurnameNative: "Иванов", PassportNumber: "AB123456", Filename: "a.docx"}

	row := r.Row()
	if len(row) != len(Columns) {
		t.Fatalf("row width: got %d want %d", len(row), len(Columns))
	}
	idx := ColumnIndex("birth_place")
	if idx < 0 {
		t.Fatalf("birth_place column not registered")
	}
	if row[idx] != "" {
		t.Fatalf("birth_place: got %q want empty", row[idx])
	}
	if row[ColumnIndex("passport_number")] != "AB123456" {
		t.Fatalf("passport_number not reindexed: %v", row)
	}
}

func TestColumnOrder(t *testing.T) {
	want := []string{
		"surname", "surname_latin", "given_name", "given_name_latin", "birth_date",
		"passport_number", "issue_date", "expiry_date", "birth_place", "authority",
		"country", "gender", "filename",
	}
	for i, key := range want {
		if Columns[i].Key != key {
			t.Fatalf("column %d: got %q want %q", i, Columns[i].Key, key)
		}
	}
	if got := Headers(); len(got) != len(want) || got[0] != "Фамилия" {
		t.Fatalf("unexpected headers: %v", got)
	}
}

func TestHasData(t *testing.T) {
	if (Record{Filename: "x.docx", Country: "Мьянма"}).HasData() {
		t.Fatalf("bookkeeping fields must not count as data")
	}
	if !(Record{Gender: "М"}).HasData() {
		t.Fatalf("gender alone is data")
	}
}

func TestTemplateCountry(t *testing.T) {
	if TemplateTurkmenistan.Country() != "Туркменистан" || TemplateMyanmar.String() != "myanmar" {
		t.Fatalf("unexpected template tags")
	}
}
