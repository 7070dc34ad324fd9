package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"strings"

	"passport_parser/internal/ports"
)

var (
	ErrBadArchive = errors.New("archive is damaged or not a zip")
	ErrNoDocx     = errors.New("archive has no .docx files")
)

// DefaultMaxEntry caps the uncompressed size of one archive entry.
const DefaultMaxEntry = 32 << 20

// ReadZip returns the .docx entries of a ZIP archive sorted by name.
// Directories, macOS resource forks and Word lock files are skipped, as are
// entries larger than maxEntry bytes (maxEntry <= 0 means DefaultMaxEntry).
func ReadZip(data []byte, maxEntry int64) ([]ports.File, error) {
	if maxEntry <= 0 {
		maxEntry = DefaultMaxEntry
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("[ARCHIVE][ERR] open zip: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}

	files := make([]ports.File, 0, len(zr.File))
	for _, f := range zr.File {
		if !isDocx(f) {
			continue
		}
		if f.UncompressedSize64 > uint64(maxEntry) {
			log.Printf("[ARCHIVE][WARN] skip %q: size=%d limit=%d", f.Name, f.UncompressedSize64, maxEntry)
			continue
		}

		body, err := readEntry(f, maxEntry)
		if err != nil {
			// A broken entry still reaches the batch so it shows up as an error row.
			log.Printf("[ARCHIVE][WARN] read %q: %v", f.Name, err)
			body = nil
		}
		files = append(files, ports.File{Name: path.Base(f.Name), Data: body})
	}

	if len(files) == 0 {
		return nil, ErrNoDocx
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	log.Printf("[ARCHIVE] docx_files=%d entries=%d", len(files), len(zr.File))
	return files, nil
}

func isDocx(f *zip.File) bool {
	if f.FileInfo().IsDir() {
		return false
	}
	name := f.Name
	if strings.HasPrefix(name, "__MACOSX/") || strings.Contains(name, "/__MACOSX/") {
		return false
	}
	base := path.Base(name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, "._") {
		return false
	}
	return strings.EqualFold(path.Ext(base), ".docx")
}

func readEntry(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("entry exceeds %d bytes", limit)
	}
	return body, nil
}
