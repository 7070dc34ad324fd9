package opener

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"passport_parser/internal/ports"
)

// LocalOpener reads archives from disk. Used by the parse command.
type LocalOpener struct {
	Root string
}

func NewLocalOpener(root string) *LocalOpener { return &LocalOpener{Root: root} }

func (l *LocalOpener) Open(_ context.Context, p string) (io.ReadCloser, ports.Meta, error) {
	full := p
	if l.Root != "" && !filepath.IsAbs(p) {
		full = filepath.Join(l.Root, p)
	}
	f, err := os.Open(full)
	if err != nil {
		log.Printf("[OPENER][LOCAL][ERR] %v", err)
		return nil, ports.Meta{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ports.Meta{}, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ports.Meta{}, fmt.Errorf("%s is a directory", full)
	}
	log.Printf("[OPENER][LOCAL][OK] path=%q size=%d", full, st.Size())
	return f, ports.Meta{
		Source: "file",
		Name:   filepath.Base(full),
		Size:   st.Size(),
		Key:    full,
	}, nil
}
