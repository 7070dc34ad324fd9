package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"passport_parser/internal/models"
	"passport_parser/internal/services/parser/extractors"
	"passport_parser/internal/utils"
)

const myanmarSample = "РЕСПУБЛИКА СОЮЗ МЬЯНМА ПАСПОРТ Номер паспорта: ma123456 " +
	"Фамилия: аунг Имя: мин Дата рождения: 5 марта 1990 Пол: М " +
	"Место рождения: янгон Дата выдачи: 12 января 2019"

func TestProcessEmptyBatch(t *testing.T) {
	b := NewBatch(extractors.DefaultRegistry(nil), 1)
	table, err := b.Process(nil)
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
	if table != nil {
		t.Fatalf("expected no table, got %+v", table)
	}
}

func TestProcessWellFormedAndMalformed(t *testing.T) {
	b := NewBatch(extractors.DefaultRegistry(nil), 2)
	table, err := b.Process([]Input{
		{Filename: "good.docx", Text: utils.NormalizeText([]string{myanmarSample}, nil)},
		{Filename: "broken.docx", Err: errors.New("zip: not a valid zip file")},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Records))
	}

	good := table.Records[0]
	if good.Filename != "good.docx" || good.PassportNumber != "MA123456" {
		t.Fatalf("unexpected good row: %+v", good)
	}
	if good.SurnameNative != "Аунг" || good.BirthPlace != "Янгон" || good.Country != "Мьянма" {
		t.Fatalf("good row not normalized: %+v", good)
	}

	bad := table.Records[1]
	if !strings.HasPrefix(bad.Filename, "broken.docx (ошибка: ") || !strings.Contains(bad.Filename, "not a valid zip") {
		t.Fatalf("unexpected error filename: %q", bad.Filename)
	}
	row := bad.Row()
	for i, v := range row {
		if models.Columns[i].Key == "filename" {
			continue
		}
		if v != "" {
			t.Fatalf("error row column %q should be empty, got %q", models.Columns[i].Key, v)
		}
	}

	if table.Stats != (Stats{Documents: 2, Extracted: 1, Failed: 1}) {
		t.Fatalf("unexpected stats: %+v", table.Stats)
	}
	if len(table.Failed) != 1 || table.Failed[0] != 1 {
		t.Fatalf("unexpected failed rows: %v", table.Failed)
	}
	if !table.HasData() {
		t.Fatalf("table with one good row must report data")
	}
}

func TestProcessKeepsInputOrder(t *testing.T) {
	docs := make([]Input, 40)
	for i := range docs {
		text := fmt.Sprintf("Туркменистан Номер паспорта: А%07d", i)
		docs[i] = Input{Filename: fmt.Sprintf("%02d.docx", i), Text: utils.NormalizeText([]string{text}, nil)}
	}

	table, err := NewBatch(extractors.DefaultRegistry(nil), 8).Process(docs)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, r := range table.Records {
		if r.Filename != fmt.Sprintf("%02d.docx", i) {
			t.Fatalf("row %d out of order: %q", i, r.Filename)
		}
		if want := fmt.Sprintf("А%07d", i); r.PassportNumber != want {
			t.Fatalf("row %d passport: got %q want %q", i, r.PassportNumber, want)
		}
	}
}

func TestProcessDocumentWithoutData(t *testing.T) {
	table, err := NewBatch(extractors.DefaultRegistry(nil), 1).Process([]Input{
		{Filename: "blank.docx", Text: utils.NormalizeText(nil, nil)},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if table.HasData() || table.Stats.Empty != 1 {
		t.Fatalf("expected an empty-data table, got %+v", table.Stats)
	}
	if table.Records[0].Filename != "blank.docx" {
		t.Fatalf("unexpected filename: %q", table.Records[0].Filename)
	}
}

type explodingExtractor struct{}

func (explodingExtractor) Template() models.TemplateID { return models.TemplateMyanmar }

func (explodingExtractor) Extract(_ models.DocumentText, rec *models.Record) error {
	rec.SurnameNative = "аунг"
	panic("unexpected table layout")
}

func TestProcessExtractorPanicBecomesPlaceholder(t *testing.T) {
	reg := extractors.Registry{models.TemplateMyanmar: explodingExtractor{}}
	table, err := NewBatch(reg, 1).Process([]Input{
		{Filename: "odd.docx", Text: utils.NormalizeText([]string{"Мьянма"}, nil)},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	rec := table.Records[0]
	if !strings.Contains(rec.Filename, "odd.docx (ошибка: ") || !strings.Contains(rec.Filename, "unexpected table layout") {
		t.Fatalf("unexpected filename: %q", rec.Filename)
	}
	if rec.SurnameNative != "Аунг" {
		t.Fatalf("fields set before the panic must survive, got %+v", rec)
	}
	if table.Stats.Failed != 1 {
		t.Fatalf("unexpected stats: %+v", table.Stats)
	}
}

func TestProcessMissingExtractor(t *testing.T) {
	table, err := NewBatch(extractors.Registry{}, 1).Process([]Input{
		{Filename: "x.docx", Text: utils.NormalizeText([]string{"Туркменистан"}, nil)},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(table.Records[0].Filename, "no extractor for template turkmenistan") {
		t.Fatalf("unexpected filename: %q", table.Records[0].Filename)
	}
}
