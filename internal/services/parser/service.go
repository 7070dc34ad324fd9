package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"passport_parser/internal/adapters/archive"
	"passport_parser/internal/adapters/docx"
	"passport_parser/internal/adapters/xlsx"
	"passport_parser/internal/models"
	"passport_parser/internal/ports"
	"passport_parser/internal/services/parser/extractors"
	"passport_parser/internal/utils"
)

var ErrArchiveTooLarge = errors.New("archive too large")

type Request struct {
	Source  string
	UserID  string
	Archive []byte
}

type Result struct {
	RunID    string
	Table    *Table
	XLSX     []byte
	Filename string
}

type Service struct {
	Opener   ports.FileOpener
	Names    ports.NameSource
	Journal  ports.Journal
	Workers  int
	MaxBytes int64
}

func NewService(opener ports.FileOpener, names ports.NameSource, journal ports.Journal, workers int, maxBytes int64) *Service {
	if workers <= 0 {
		workers = 4
	}
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	return &Service{Opener: opener, Names: names, Journal: journal, Workers: workers, MaxBytes: maxBytes}
}

// ParsePath fetches an archive through the opener and parses it.
func (s *Service) ParsePath(ctx context.Context, filePath, userID string) (Result, error) {
	if s.Opener == nil {
		return Result{}, errors.New("no file opener configured")
	}
	rc, meta, err := s.Opener.Open(ctx, filePath)
	if err != nil {
		log.Printf("[PARSE][ERR] open: %v", err)
		return Result{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.MaxBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("read archive: %w", err)
	}
	if int64(len(data)) > s.MaxBytes {
		return Result{}, fmt.Errorf("%w: exceeds %d bytes", ErrArchiveTooLarge, s.MaxBytes)
	}
	log.Printf("[PARSE] source=%s content_type=%q size=%d", meta.Source, meta.ContentType, len(data))

	return s.ParseArchive(ctx, Request{Source: meta.Source + ":" + meta.Name, UserID: userID, Archive: data})
}

// ParseArchive runs the whole pipeline over a ZIP of .docx files.
func (s *Service) ParseArchive(ctx context.Context, req Request) (Result, error) {
	t0 := time.Now()
	runID := uuid.NewString()
	log.Printf("[PARSE][START] run=%s source=%q user=%q size=%d", runID, req.Source, req.UserID, len(req.Archive))

	files, err := archive.ReadZip(req.Archive, 0)
	if err != nil {
		log.Printf("[PARSE][ERR] run=%s archive: %v", runID, err)
		return Result{RunID: runID}, err
	}

	run := ports.Run{ID: runID, Source: req.Source, UserID: req.UserID, Status: "processing", Documents: len(files)}
	s.startRun(ctx, run)

	table, err := s.ParseFiles(ctx, files)
	if err != nil {
		run.Status, run.Errors = "failed", err.Error()
		s.finishRun(ctx, run)
		return Result{RunID: runID}, err
	}

	out, err := Render(table)
	if err != nil {
		run.Status, run.Errors = "failed", err.Error()
		s.finishRun(ctx, run)
		return Result{RunID: runID, Table: table}, fmt.Errorf("write xlsx: %w", err)
	}

	s.logItems(ctx, runID, table)
	run.Status = "done"
	run.Extracted, run.Failed = table.Stats.Extracted, table.Stats.Failed
	s.finishRun(ctx, run)

	log.Printf("[PARSE][DONE] run=%s documents=%d extracted=%d failed=%d bytes=%d duration=%s",
		runID, table.Stats.Documents, table.Stats.Extracted, table.Stats.Failed, len(out), time.Since(t0))

	return Result{RunID: runID, Table: table, XLSX: out, Filename: ResultFilename(req.UserID, runID)}, nil
}

// ParseFiles decodes every file and aggregates the batch. Unreadable files
// become error rows.
func (s *Service) ParseFiles(ctx context.Context, files []ports.File) (*Table, error) {
	inputs := make([]Input, 0, len(files))
	for _, f := range files {
		in := Input{Filename: f.Name}
		d, err := docx.Read(f.Data)
		if err != nil {
			in.Err = err
		} else {
			in.Text = utils.NormalizeText(d.Paragraphs, d.Cells)
		}
		inputs = append(inputs, in)
	}

	reg := extractors.DefaultRegistry(extractors.NameBook{
		models.TemplateMyanmar:      s.loadNames(ctx, models.TemplateMyanmar),
		models.TemplateTurkmenistan: s.loadNames(ctx, models.TemplateTurkmenistan),
	})
	return NewBatch(reg, s.Workers).Process(inputs)
}

func (s *Service) loadNames(ctx context.Context, tpl models.TemplateID) ports.NameLookup {
	if s.Names == nil {
		return ports.NameMap{}
	}
	m, err := s.Names.LoadNames(ctx, tpl.String())
	if err != nil {
		log.Printf("[PARSE][WARN] name overrides for %s unavailable: %v", tpl, err)
		return ports.NameMap{}
	}
	return m
}

func (s *Service) startRun(ctx context.Context, run ports.Run) {
	if s.Journal == nil {
		return
	}
	if err := s.Journal.StartRun(ctx, run); err != nil {
		log.Printf("[PARSE][JOURNAL][ERR] start run=%s: %v", run.ID, err)
	}
}

func (s *Service) finishRun(ctx context.Context, run ports.Run) {
	if s.Journal == nil {
		return
	}
	if err := s.Journal.FinishRun(ctx, run); err != nil {
		log.Printf("[PARSE][JOURNAL][ERR] finish run=%s: %v", run.ID, err)
	}
}

func (s *Service) logItems(ctx context.Context, runID string, table *Table) {
	if s.Journal == nil {
		return
	}
	failed := make(map[int]bool, len(table.Failed))
	for _, i := range table.Failed {
		failed[i] = true
	}
	for i, r := range table.Records {
		item := ports.RunItem{RunID: runID, Filename: r.Filename, Status: "done"}
		switch {
		case failed[i]:
			item.Status, item.Errors = "failed", r.Filename
		case !r.HasData():
			item.Status = "empty"
		}
		s.Journal.LogItem(ctx, item)
	}
}

// Render serializes table to .xlsx with error rows highlighted.
func Render(table *Table) ([]byte, error) {
	return xlsx.Bytes(xlsx.Sheet{Headers: models.Headers(), Rows: table.Rows(), ErrorRows: table.Failed})
}

// ResultFilename names the generated spreadsheet.
func ResultFilename(userID, runID string) string {
	id := strings.TrimSpace(userID)
	if id == "" {
		id = runID
		if len(id) > 8 {
			id = id[:8]
		}
	}
	return "parsed_" + id + ".xlsx"
}
