package parser

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"passport_parser/internal/models"
	"passport_parser/internal/services/parser/extractors"
)

// ErrNoDocuments means the batch had nothing to process.
var ErrNoDocuments = errors.New("no documents found")

// Input is one source document. Err is set when the container could not be
// read; Text is then ignored.
type Input struct {
	Filename string
	Text     models.DocumentText
	Err      error
}

// Stats separates "no input" from "input without usable data".
type Stats struct {
	Documents int
	Extracted int
	Failed    int
	Empty     int
}

// Table is the aggregated batch output in the published column order.
type Table struct {
	Columns []models.Column
	Records []models.Record
	Stats   Stats

	// Failed holds the indexes of error rows.
	Failed []int
}

// Rows reindexes every record into the column order.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.Records))
	for i, r := range t.Records {
		rows[i] = r.Row()
	}
	return rows
}

// HasData reports whether at least one document produced extracted fields.
func (t *Table) HasData() bool { return t.Stats.Extracted > 0 }

type Batch struct {
	Registry extractors.Registry
	Workers  int
}

func NewBatch(reg extractors.Registry, workers int) *Batch {
	if workers <= 0 {
		workers = 1
	}
	return &Batch{Registry: reg, Workers: workers}
}

type outcome struct {
	rec    models.Record
	failed bool
}

// Process extracts every input and aggregates the rows in input order. One
// failing document never aborts the batch; only an empty input is reported
// as an error.
func (b *Batch) Process(docs []Input) (*Table, error) {
	if len(docs) == 0 {
		log.Printf("[BATCH][DONE] no documents")
		return nil, ErrNoDocuments
	}

	t0 := time.Now()
	out := make([]outcome, len(docs))

	var g errgroup.Group
	g.SetLimit(b.Workers)
	for i := range docs {
		g.Go(func() error {
			out[i] = b.one(docs[i])
			return nil
		})
	}
	_ = g.Wait()

	table := &Table{Columns: models.Columns, Records: make([]models.Record, 0, len(docs))}
	table.Stats.Documents = len(docs)
	for i, o := range out {
		switch {
		case o.failed:
			table.Stats.Failed++
			table.Failed = append(table.Failed, i)
		case o.rec.HasData():
			table.Stats.Extracted++
		default:
			table.Stats.Empty++
		}
		table.Records = append(table.Records, o.rec)
	}

	log.Printf("[BATCH][DONE] documents=%d extracted=%d failed=%d empty=%d duration=%s",
		table.Stats.Documents, table.Stats.Extracted, table.Stats.Failed, table.Stats.Empty, time.Since(t0))
	return table, nil
}

func (b *Batch) one(in Input) outcome {
	if in.Err != nil {
		log.Printf("[BATCH][ERR] file=%q read: %v", in.Filename, in.Err)
		return outcome{rec: placeholder(models.Record{}, in.Filename, in.Err), failed: true}
	}

	tpl := extractors.SelectTemplate(in.Text)
	ex, ok := b.Registry[tpl]
	if !ok {
		err := fmt.Errorf("no extractor for template %s", tpl)
		log.Printf("[BATCH][ERR] file=%q %v", in.Filename, err)
		return outcome{rec: placeholder(models.Record{}, in.Filename, err), failed: true}
	}

	rec, err := extractors.Run(ex, in.Text)
	if err != nil {
		log.Printf("[BATCH][ERR] file=%q template=%s: %v", in.Filename, tpl, err)
		return outcome{rec: placeholder(extractors.NormalizeRecord(rec), in.Filename, err), failed: true}
	}

	rec.Filename = in.Filename
	log.Printf("[BATCH] file=%q template=%s has_data=%t", in.Filename, tpl, rec.HasData())
	return outcome{rec: extractors.NormalizeRecord(rec)}
}

// placeholder marks rec as the error row for filename.
func placeholder(rec models.Record, filename string, err error) models.Record {
	rec.Filename = fmt.Sprintf("%s (ошибка: %v)", filename, err)
	return rec
}
