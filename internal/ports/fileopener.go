package ports

import (
	"context"
	"io"
)

// Meta describes an opened stream. Name is safe to log: it never carries
// credentials embedded in the source path.
type Meta struct {
	Source      string
	Name        string
	ContentType string
	Size        int64
	Bucket      string
	Key         string
}

type FileOpener interface {
	Open(ctx context.Context, filePath string) (io.ReadCloser, Meta, error)
}

// File is one named byte stream pulled out of an archive.
type File struct {
	Name string
	Data []byte
}
