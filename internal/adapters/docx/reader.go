package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var ErrEmptyDocument = errors.New("docx: empty document body")

// Document is the structural text of a .docx: body-level paragraphs and the
// cells of every top-level table, both in document order.
type Document struct {
	Paragraphs []string
	Cells      []string
}

// Read opens an in-memory .docx and collects its paragraph and cell texts.
func Read(data []byte) (*Document, error) {
	rd, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer rd.Close()

	body := rd.Editable().GetContent()
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyDocument
	}
	return parseBody(strings.NewReader(body))
}

// parseBody walks word/document.xml. Paragraphs inside a table become part
// of the enclosing top-level cell, one line each.
func parseBody(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}

	var (
		tblDepth int
		inText   bool
		par      strings.Builder
		cell     strings.Builder
		cellOpen bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				tblDepth++
			case "tc":
				if tblDepth == 1 {
					cell.Reset()
					cellOpen = true
				}
			case "p":
				par.Reset()
			case "t":
				inText = true
			case "tab":
				par.WriteString(" ")
			case "br", "cr":
				par.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				par.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if tblDepth == 0 {
					doc.Paragraphs = append(doc.Paragraphs, par.String())
					continue
				}
				if cellOpen {
					if cell.Len() > 0 {
						cell.WriteString("\n")
					}
					cell.WriteString(par.String())
				}
			case "tc":
				if tblDepth == 1 && cellOpen {
					doc.Cells = append(doc.Cells, cell.String())
					cellOpen = false
				}
			case "tbl":
				if tblDepth > 0 {
					tblDepth--
				}
			}
		}
	}

	return doc, nil
}
