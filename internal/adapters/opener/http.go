package opener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"passport_parser/internal/ports"
)

type HTTPOpener struct{ Client *http.Client }

func NewHTTPOpener(cli *http.Client) *HTTPOpener {
	if cli == nil {
		cli = &http.Client{Timeout: 2 * time.Minute}
	}
	return &HTTPOpener{Client: cli}
}

// displayName keeps host and file name only. Telegram file URLs embed the
// bot token in the path.
func displayName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "url"
	}
	return u.Host + "/" + path.Base(u.Path)
}

func (h *HTTPOpener) Open(ctx context.Context, rawURL string) (io.ReadCloser, ports.Meta, error) {
	name := displayName(rawURL)
	log.Printf("[OPENER][HTTP][START] name=%q", name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Printf("[OPENER][HTTP][ERR] build request for %q", name)
		return nil, ports.Meta{}, fmt.Errorf("build request for %s", name)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		cause := err
		// *url.Error repeats the full URL; keep only what it wraps.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			cause = uerr.Err
		}
		log.Printf("[OPENER][HTTP][ERR] do request for %q: %v", name, cause)
		return nil, ports.Meta{}, fmt.Errorf("download %s: %w", name, cause)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		log.Printf("[OPENER][HTTP][ERR] status=%d content_type=%q", resp.StatusCode, resp.Header.Get("Content-Type"))
		return nil, ports.Meta{}, fmt.Errorf("http status %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	size := resp.ContentLength
	if size < 0 {
		size = -1
	}
	log.Printf("[OPENER][HTTP][OK] content_type=%q size=%d", ct, size)
	return resp.Body, ports.Meta{
		Source:      "https",
		Name:        name,
		ContentType: ct,
		Size:        size,
	}, nil
}
