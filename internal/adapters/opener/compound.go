package opener

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"passport_parser/internal/ports"
)

// CompoundOpener routes an archive location to the opener that can serve it:
// http(s) URLs, s3://bucket/key, file:// or a bare key in the default bucket.
// A bare path falls back to the local filesystem when no bucket is set.
type CompoundOpener struct {
	HTTP  *HTTPOpener
	S3    *S3Opener
	Local *LocalOpener

	DefaultBucket string
}

func NewCompoundOpener(httpOp *HTTPOpener, s3Op *S3Opener, local *LocalOpener, defaultBucket string) *CompoundOpener {
	return &CompoundOpener{
		HTTP:          httpOp,
		S3:            s3Op,
		Local:         local,
		DefaultBucket: defaultBucket,
	}
}

func (c *CompoundOpener) Open(ctx context.Context, filePath string) (io.ReadCloser, ports.Meta, error) {
	fp := strings.TrimSpace(filePath)
	if fp == "" {
		return nil, ports.Meta{}, errors.New("empty file path")
	}

	switch {
	case strings.HasPrefix(fp, "http://") || strings.HasPrefix(fp, "https://"):
		if c.HTTP == nil {
			return nil, ports.Meta{}, errors.New("http opener not configured")
		}
		return c.HTTP.Open(ctx, fp)

	case strings.HasPrefix(fp, "s3://"):
		if c.S3 == nil {
			return nil, ports.Meta{}, errors.New("s3 opener not configured")
		}
		bkt, key, err := parseS3URL(fp)
		if err != nil {
			return nil, ports.Meta{}, err
		}
		return c.S3.Open(ctx, bkt, key)

	case strings.HasPrefix(fp, "file://"):
		if c.Local == nil {
			return nil, ports.Meta{}, errors.New("local opener not configured")
		}
		return c.Local.Open(ctx, strings.TrimPrefix(fp, "file://"))

	case c.S3 != nil && c.DefaultBucket != "":
		return c.S3.Open(ctx, c.DefaultBucket, fp)

	case c.Local != nil:
		return c.Local.Open(ctx, fp)

	default:
		return nil, ports.Meta{}, errors.New("missing bucket: pass s3://bucket/key or https url")
	}
}

func parseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", errors.New("scheme must be s3")
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	key = path.Clean(key)
	if bucket == "" || key == "" || key == "." || key == "/" {
		return "", "", errors.New("empty bucket or key")
	}
	return bucket, key, nil
}
