package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"passport_parser/internal/config"
	"passport_parser/internal/ports"
	"passport_parser/internal/services/parser"
)

var parseOutput string

var parseCmd = &cobra.Command{
	Use:   "parse [archive.zip|dir]",
	Short: "Parse a ZIP archive or a directory of .docx files",
	Long: `Parses every .docx in a ZIP archive (local path, s3://bucket/key or https URL)
or in a local directory and writes the spreadsheet to --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "parsed.xlsx", "spreadsheet to write")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := config.Init(cmd.Context())
	defer cfg.Close(cmd.Context())

	svc := newService(cfg)
	src := args[0]

	var table *parser.Table
	var out []byte

	st, statErr := os.Stat(src)
	if statErr == nil && st.IsDir() {
		files, err := readDocxDir(src)
		if err != nil {
			return err
		}
		if table, err = svc.ParseFiles(cmd.Context(), files); err != nil {
			return err
		}
		if out, err = parser.Render(table); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	} else {
		if statErr == nil {
			abs, err := filepath.Abs(src)
			if err != nil {
				return err
			}
			src = "file://" + abs
		}
		res, err := svc.ParsePath(cmd.Context(), src, "")
		if err != nil {
			return err
		}
		table, out = res.Table, res.XLSX
	}

	if err := os.WriteFile(parseOutput, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", parseOutput, err)
	}

	cmd.Printf("Documents: %d, with data: %d, failed: %d\n", table.Stats.Documents, table.Stats.Extracted, table.Stats.Failed)
	if !table.HasData() {
		cmd.Println("No data extracted.")
	}
	cmd.Printf("Wrote %s\n", parseOutput)
	return nil
}

// readDocxDir loads the .docx files directly under dir, sorted by name.
// Word lock files are skipped.
func readDocxDir(dir string) ([]ports.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ports.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".docx") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files = append(files, ports.File{Name: name, Data: data})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .docx files in %s", dir)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
