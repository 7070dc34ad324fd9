package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Паспорта"

const (
	minColWidth = 10
	maxColWidth = 60
)

// Sheet is what the writer needs from a batch result.
type Sheet struct {
	Headers []string
	Rows    [][]string
	// ErrorRows are 0-based indexes into Rows to highlight.
	ErrorRows []int
}

// Write renders s as a styled single-sheet workbook.
func Write(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range s.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(s.Headers) > 0 {
		if err := style(f, s); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// Bytes is Write into a buffer.
func Bytes(s Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func style(f *excelize.File, s Sheet) error {
	lastCol, err := excelize.ColumnNumberToName(len(s.Headers))
	if err != nil {
		return err
	}
	border := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "1F1F1F"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	if len(s.Rows) > 0 {
		bodyStyle, err := f.NewStyle(&excelize.Style{
			Border:    border,
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		})
		if err != nil {
			return fmt.Errorf("body style: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("%s%d", lastCol, len(s.Rows)+1), bodyStyle); err != nil {
			return err
		}

		errStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Color: "9C0006"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
			Border:    border,
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		})
		if err != nil {
			return fmt.Errorf("error style: %w", err)
		}
		for _, i := range s.ErrorRows {
			if i < 0 || i >= len(s.Rows) {
				continue
			}
			row := i + 2
			if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), errStyle); err != nil {
				return err
			}
		}
	}

	for i, width := range columnWidths(s) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return f.AutoFilter(SheetName, "A1:"+lastCol+"1", nil)
}

func columnWidths(s Sheet) []float64 {
	widths := make([]float64, len(s.Headers))
	for i, h := range s.Headers {
		widths[i] = float64(utf8.RuneCountInString(h))
	}
	for _, row := range s.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if n := float64(utf8.RuneCountInString(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, w := range widths {
		w += 2
		switch {
		case w < minColWidth:
			w = minColWidth
		case w > maxColWidth:
			w = maxColWidth
		}
		widths[i] = w
	}
	return widths
}
